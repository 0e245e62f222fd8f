package seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistent seat storage operations
type Repository interface {
	CreateSeats(ctx context.Context, seats []Seat) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error)
	GetSeat(ctx context.Context, eventID uuid.UUID, id SeatID) (*Seat, error)
	GetSeats(ctx context.Context, eventID uuid.UUID, ids []SeatID) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	if len(seats) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&seats).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}
	return nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("row_name asc, seat_number asc").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}

func (r *repository) GetSeat(ctx context.Context, eventID uuid.UUID, id SeatID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND row_name = ? AND seat_number = ?", eventID, id.Row, id.Number).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return &seat, nil
}

func (r *repository) GetSeats(ctx context.Context, eventID uuid.UUID, ids []SeatID) ([]Seat, error) {
	seats := make([]Seat, 0, len(ids))
	for _, id := range ids {
		seat, err := r.GetSeat(ctx, eventID, id)
		if err != nil {
			return nil, err
		}
		seats = append(seats, *seat)
	}
	return seats, nil
}
