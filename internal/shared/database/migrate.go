package database

import (
	"tessera/internal/events"
	"tessera/internal/payments"
	"tessera/internal/sales"
	"tessera/internal/seats"
	"tessera/internal/users"

	"gorm.io/gorm"
)

// Migrate runs the GORM auto-migrations for all persisted models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&seats.Seat{},
		&payments.PaymentIntent{},
		&sales.Sale{},
		&sales.SaleSeat{},
	)
}
