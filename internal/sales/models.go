package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a committed purchase: one confirmed payment intent turned
// into owned seats. PaymentIntentID is unique, which makes the commit
// idempotent per intent.
type Sale struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PaymentIntentID string     `gorm:"uniqueIndex;not null" json:"payment_intent_id"`
	EventID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	TotalAmount     int64      `gorm:"not null" json:"total_amount"`
	Currency        string     `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt       time.Time  `json:"created_at"`
	Seats           []SaleSeat `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE;" json:"seats,omitempty"`
}

// SaleSeat is one seat of a sale at the price it was sold for
type SaleSeat struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SaleID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"sale_id"`
	RowName    string          `gorm:"not null" json:"row_name"`
	SeatNumber int             `gorm:"not null" json:"seat_number"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
}

// TableName sets the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// TableName sets the table name for SaleSeat
func (SaleSeat) TableName() string {
	return "sale_seats"
}
