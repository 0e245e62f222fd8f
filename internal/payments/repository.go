package payments

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository defines payment intent storage operations
type Repository interface {
	CreateIntent(ctx context.Context, intent *PaymentIntent) error
	GetIntentByID(ctx context.Context, id string) (*PaymentIntent, error)
	UpdateStatus(ctx context.Context, id string, status IntentStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateIntent(ctx context.Context, intent *PaymentIntent) error {
	if err := r.db.WithContext(ctx).Create(intent).Error; err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}
	return nil
}

func (r *repository) GetIntentByID(ctx context.Context, id string) (*PaymentIntent, error) {
	var intent PaymentIntent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return &intent, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status IntentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&PaymentIntent{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment intent status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIntentNotFound
	}
	return nil
}
