package payments

import (
	"time"

	"github.com/google/uuid"
)

// IntentStatus is the lifecycle state of a payment intent
type IntentStatus string

const (
	IntentStatusRequiresPayment IntentStatus = "REQUIRES_PAYMENT_METHOD"
	IntentStatusSucceeded       IntentStatus = "SUCCEEDED"
	IntentStatusFailed          IntentStatus = "FAILED"
)

// PaymentIntent is one chargeable intent, created per checkout for the
// selection total
type PaymentIntent struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	ClientSecret string       `gorm:"not null" json:"-"`
	Amount       int64        `gorm:"not null" json:"amount"`
	Currency     string       `gorm:"type:varchar(3);not null" json:"currency"`
	Status       IntentStatus `gorm:"type:varchar(30);not null;default:'REQUIRES_PAYMENT_METHOD'" json:"status"`
	UserID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"event_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName sets the table name for PaymentIntent
func (PaymentIntent) TableName() string {
	return "payment_intents"
}

func (p *PaymentIntent) IsSucceeded() bool {
	return p.Status == IntentStatusSucceeded
}

// Card is the card input passed to the processor
type Card struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
}
