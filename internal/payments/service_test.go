package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIntentRepo struct {
	intents map[string]*PaymentIntent
}

func newFakeIntentRepo() *fakeIntentRepo {
	return &fakeIntentRepo{intents: make(map[string]*PaymentIntent)}
}

func (r *fakeIntentRepo) CreateIntent(_ context.Context, intent *PaymentIntent) error {
	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = time.Now()
	}
	copied := *intent
	r.intents[intent.ID] = &copied
	return nil
}

func (r *fakeIntentRepo) GetIntentByID(_ context.Context, id string) (*PaymentIntent, error) {
	intent, ok := r.intents[id]
	if !ok {
		return nil, ErrIntentNotFound
	}
	copied := *intent
	return &copied, nil
}

func (r *fakeIntentRepo) UpdateStatus(_ context.Context, id string, status IntentStatus) error {
	intent, ok := r.intents[id]
	if !ok {
		return ErrIntentNotFound
	}
	intent.Status = status
	return nil
}

type fakeProcessor struct {
	chargeErr   error
	chargeCalls int
}

func (p *fakeProcessor) Charge(_ context.Context, _ string, _ int64, _ Card) error {
	p.chargeCalls++
	return p.chargeErr
}

func validCard() Card {
	return Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newFakeIntentRepo(), &fakeProcessor{}, 30*time.Minute)

	_, err := svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), 0, "usd")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), -100, "usd")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestConfirmChargesAndRecordsSuccess(t *testing.T) {
	repo := newFakeIntentRepo()
	processor := &fakeProcessor{}
	svc := NewService(repo, processor, 30*time.Minute)

	intent, err := svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), 6550, "usd")
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), intent.ID, intent.ClientSecret, validCard())
	require.NoError(t, err)
	assert.Equal(t, 1, processor.chargeCalls)

	stored, err := svc.GetIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSucceeded())
}

func TestConfirmRejectsWrongSecret(t *testing.T) {
	repo := newFakeIntentRepo()
	processor := &fakeProcessor{}
	svc := NewService(repo, processor, 30*time.Minute)

	intent, err := svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), 1000, "usd")
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), intent.ID, "pi_secret_wrong", validCard())
	assert.ErrorIs(t, err, ErrInvalidSecret)
	assert.Zero(t, processor.chargeCalls)
}

func TestConfirmIsNotRepeatable(t *testing.T) {
	repo := newFakeIntentRepo()
	processor := &fakeProcessor{}
	svc := NewService(repo, processor, 30*time.Minute)

	intent, err := svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), 1000, "usd")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), intent.ID, intent.ClientSecret, validCard()))
	err = svc.Confirm(context.Background(), intent.ID, intent.ClientSecret, validCard())
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Equal(t, 1, processor.chargeCalls)
}

func TestConfirmExpiresStaleIntent(t *testing.T) {
	repo := newFakeIntentRepo()
	processor := &fakeProcessor{}
	svc := NewService(repo, processor, 30*time.Minute)

	intent, err := svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), 1000, "usd")
	require.NoError(t, err)
	repo.intents[intent.ID].CreatedAt = time.Now().Add(-time.Hour)

	err = svc.Confirm(context.Background(), intent.ID, intent.ClientSecret, validCard())
	assert.ErrorIs(t, err, ErrIntentExpired)
	assert.Zero(t, processor.chargeCalls)

	stored, err := svc.GetIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentStatusFailed, stored.Status)
}

func TestConfirmRecordsDeclinedCharge(t *testing.T) {
	repo := newFakeIntentRepo()
	processor := &fakeProcessor{chargeErr: ErrCardDeclined}
	svc := NewService(repo, processor, 30*time.Minute)

	intent, err := svc.CreateIntent(context.Background(), uuid.NewString(), uuid.NewString(), 1000, "usd")
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), intent.ID, intent.ClientSecret, validCard())
	assert.ErrorIs(t, err, ErrCardDeclined)

	stored, err := svc.GetIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentStatusFailed, stored.Status)
}
