package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIntentNotFound   = errors.New("payment intent not found")
	ErrInvalidSecret    = errors.New("invalid client secret")
	ErrInvalidAmount    = errors.New("invalid payment amount")
	ErrIntentExpired    = errors.New("payment intent expired")
	ErrAlreadyConfirmed = errors.New("payment intent already confirmed")
)

// Service creates and confirms payment intents
type Service interface {
	CreateIntent(ctx context.Context, userID, eventID string, amount int64, currency string) (*PaymentIntent, error)
	Confirm(ctx context.Context, intentID, clientSecret string, card Card) error
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}

type service struct {
	repo      Repository
	processor Processor
	intentTTL time.Duration
}

func NewService(repo Repository, processor Processor, intentTTL time.Duration) *service {
	return &service{
		repo:      repo,
		processor: processor,
		intentTTL: intentTTL,
	}
}

func (s *service) CreateIntent(ctx context.Context, userID, eventID string, amount int64, currency string) (*PaymentIntent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}

	intent := &PaymentIntent{
		ID:           "pi_" + uuid.NewString(),
		ClientSecret: "pi_secret_" + uuid.NewString(),
		Amount:       amount,
		Currency:     currency,
		Status:       IntentStatusRequiresPayment,
		UserID:       uid,
		EventID:      eid,
	}

	if err := s.repo.CreateIntent(ctx, intent); err != nil {
		return nil, err
	}

	return intent, nil
}

func (s *service) Confirm(ctx context.Context, intentID, clientSecret string, card Card) error {
	intent, err := s.repo.GetIntentByID(ctx, intentID)
	if err != nil {
		return err
	}
	if intent.ClientSecret != clientSecret {
		return ErrInvalidSecret
	}
	if intent.IsSucceeded() {
		return ErrAlreadyConfirmed
	}
	if s.intentTTL > 0 && time.Since(intent.CreatedAt) > s.intentTTL {
		if updateErr := s.repo.UpdateStatus(ctx, intent.ID, IntentStatusFailed); updateErr != nil {
			return fmt.Errorf("failed to expire payment intent: %w", updateErr)
		}
		return ErrIntentExpired
	}

	if err := s.processor.Charge(ctx, intent.ID, intent.Amount, card); err != nil {
		if updateErr := s.repo.UpdateStatus(ctx, intent.ID, IntentStatusFailed); updateErr != nil {
			return fmt.Errorf("failed to record declined charge: %w", updateErr)
		}
		return err
	}

	return s.repo.UpdateStatus(ctx, intent.ID, IntentStatusSucceeded)
}

func (s *service) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	return s.repo.GetIntentByID(ctx, intentID)
}
