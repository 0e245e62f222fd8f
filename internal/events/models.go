package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event defines the structure for events
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"event_id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"index" json:"location"`
	Date        string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"type:varchar(5);not null" json:"time"`        // HH:MM, 24h
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

// StartsAt combines the date and time columns into a wall-clock timestamp
func (e *Event) StartsAt() (time.Time, error) {
	ts, err := time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event schedule %q %q: %w", e.Date, e.Time, err)
	}
	return ts, nil
}

// HasStarted reports whether the event start time has passed
func (e *Event) HasStarted(now time.Time) bool {
	ts, err := e.StartsAt()
	if err != nil {
		return false
	}
	return !now.Before(ts)
}

// EventListQuery holds the supported listing filters
type EventListQuery struct {
	AfterDate string `form:"afterDate"`
	Location  string `form:"location"`
}

// CreateEventRequest represents the admin event creation payload
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	ImageURL    string `json:"image_url"`
}
