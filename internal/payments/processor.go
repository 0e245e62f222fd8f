package payments

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrCardDeclined   = errors.New("card declined")
	ErrProcessorError = errors.New("payment processor error")
)

// Processor charges a payment intent
type Processor interface {
	Charge(ctx context.Context, intentID string, amount int64, card Card) error
}

// mockProcessor simulates an external card processor. Cards on the
// decline list are rejected, expired cards are a processor error,
// everything else succeeds.
type mockProcessor struct {
	declineCards map[string]bool
	now          func() time.Time
}

func NewMockProcessor(declineCards []string) Processor {
	declined := make(map[string]bool, len(declineCards))
	for _, card := range declineCards {
		declined[strings.ReplaceAll(card, " ", "")] = true
	}
	return &mockProcessor{
		declineCards: declined,
		now:          time.Now,
	}
}

func (p *mockProcessor) Charge(ctx context.Context, intentID string, amount int64, card Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	number := strings.ReplaceAll(card.Number, " ", "")
	if len(number) < 12 || amount <= 0 {
		return ErrProcessorError
	}

	now := p.now()
	if card.ExpYear < now.Year() || (card.ExpYear == now.Year() && card.ExpMonth < int(now.Month())) {
		return ErrProcessorError
	}

	if p.declineCards[number] {
		return ErrCardDeclined
	}

	return nil
}
