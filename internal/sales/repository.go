package sales

import (
	"context"
	"errors"
	"fmt"

	"tessera/internal/seats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound   = errors.New("sale not found")
	ErrCommitConflict = errors.New("seat already sold")
)

// Repository commits and reads sales
type Repository interface {
	CommitSale(ctx context.Context, sale *Sale, seatIDs []seats.SeatID) error
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*Sale, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Sale, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CommitSale atomically marks the seats SOLD and records the sale. If
// any seat is already SOLD, nothing is written and ErrCommitConflict
// is returned. A sale that already exists for the payment intent is
// returned as committed, making retries safe.
func (r *repository) CommitSale(ctx context.Context, sale *Sale, seatIDs []seats.SeatID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Sale
		err := tx.Where("payment_intent_id = ?", sale.PaymentIntentID).
			Preload("Seats").
			First(&existing).Error
		if err == nil {
			*sale = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing sale: %w", err)
		}

		for _, id := range seatIDs {
			result := tx.Model(&seats.Seat{}).
				Where("event_id = ? AND row_name = ? AND seat_number = ? AND status <> ?",
					sale.EventID, id.Row, id.Number, seats.StatusSold).
				Update("status", seats.StatusSold)
			if result.Error != nil {
				return fmt.Errorf("failed to mark seat sold: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrCommitConflict
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*Sale, error) {
	var sale Sale
	err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", paymentIntentID).
		Preload("Seats").
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sale, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Sale, error) {
	var userSales []Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Seats").
		Order("created_at desc").
		Find(&userSales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return userSales, nil
}
