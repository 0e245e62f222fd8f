package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, query EventListQuery) ([]Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateEvent(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) ListEvents(ctx context.Context, query EventListQuery) ([]Event, error) {
	db := r.db.WithContext(ctx).Model(&Event{})

	if query.AfterDate != "" {
		db = db.Where("date > ?", query.AfterDate)
	}
	if query.Location != "" {
		db = db.Where("location = ?", query.Location)
	}

	var events []Event
	if err := db.Order("date asc, time asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
