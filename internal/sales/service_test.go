package sales

import (
	"context"
	"testing"

	"tessera/internal/payments"
	"tessera/internal/seats"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUserID  = uuid.New()
	testEventID = uuid.New()
)

type fakePaymentService struct {
	intent *payments.PaymentIntent
	err    error
}

func (f *fakePaymentService) CreateIntent(ctx context.Context, userID, eventID string, amount int64, currency string) (*payments.PaymentIntent, error) {
	panic("not used")
}

func (f *fakePaymentService) Confirm(ctx context.Context, intentID, clientSecret string, card payments.Card) error {
	panic("not used")
}

func (f *fakePaymentService) GetIntent(ctx context.Context, intentID string) (*payments.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

type fakeSeatService struct {
	held          []seats.Seat
	releasedCalls int
	releasedSeats []seats.SeatID
}

func (f *fakeSeatService) ProvisionSeats(ctx context.Context, eventID string, req seats.ProvisionSeatsRequest) (int, error) {
	panic("not used")
}

func (f *fakeSeatService) GetSeatMap(ctx context.Context, eventID, userID string) (*seats.SeatMapResponse, error) {
	panic("not used")
}

func (f *fakeSeatService) Reserve(ctx context.Context, eventID, userID string, seat seats.SeatID) (*seats.SeatActionResponse, error) {
	panic("not used")
}

func (f *fakeSeatService) Release(ctx context.Context, eventID, userID string, seat seats.SeatID) (*seats.SeatActionResponse, error) {
	panic("not used")
}

func (f *fakeSeatService) HeldSeats(ctx context.Context, eventID, userID string) ([]seats.Seat, error) {
	return f.held, nil
}

func (f *fakeSeatService) ReleaseHolds(ctx context.Context, eventID, userID string, seatIDs []seats.SeatID) error {
	f.releasedCalls++
	f.releasedSeats = seatIDs
	return nil
}

type fakeSalesRepo struct {
	committed *Sale
	commitErr error
}

func (f *fakeSalesRepo) CommitSale(ctx context.Context, sale *Sale, seatIDs []seats.SeatID) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	sale.ID = uuid.New()
	f.committed = sale
	return nil
}

func (f *fakeSalesRepo) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*Sale, error) {
	return f.committed, nil
}

func (f *fakeSalesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Sale, error) {
	if f.committed == nil {
		return []Sale{}, nil
	}
	return []Sale{*f.committed}, nil
}

func succeededIntent() *payments.PaymentIntent {
	return &payments.PaymentIntent{
		ID:       "pi_test",
		Amount:   6550,
		Currency: "usd",
		Status:   payments.IntentStatusSucceeded,
		UserID:   testUserID,
		EventID:  testEventID,
	}
}

func heldSeats() []seats.Seat {
	return []seats.Seat{
		{EventID: testEventID, RowName: "A", SeatNumber: 1, Price: decimal.NewFromFloat(25.00)},
		{EventID: testEventID, RowName: "A", SeatNumber: 2, Price: decimal.NewFromFloat(40.50)},
	}
}

func TestCompletePurchaseCommitsHeldSeats(t *testing.T) {
	repo := &fakeSalesRepo{}
	seatService := &fakeSeatService{held: heldSeats()}
	svc := NewService(repo, &fakePaymentService{intent: succeededIntent()}, seatService)

	sale, err := svc.CompletePurchase(context.Background(), testUserID.String(), testEventID.String(), "pi_test")
	require.NoError(t, err)

	assert.Equal(t, "pi_test", sale.PaymentIntentID)
	assert.Equal(t, int64(6550), sale.TotalAmount)
	require.Len(t, sale.Seats, 2)
	assert.Equal(t, "A", sale.Seats[0].RowName)

	// Holds are cleared once the seats are owned
	assert.Equal(t, 1, seatService.releasedCalls)
	assert.Len(t, seatService.releasedSeats, 2)
}

func TestCommitSaleRequiresConfirmedPayment(t *testing.T) {
	intent := succeededIntent()
	intent.Status = payments.IntentStatusRequiresPayment

	svc := NewService(&fakeSalesRepo{}, &fakePaymentService{intent: intent}, &fakeSeatService{held: heldSeats()})

	_, err := svc.CompletePurchase(context.Background(), testUserID.String(), testEventID.String(), "pi_test")
	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
}

func TestCommitSaleRejectsForeignIntent(t *testing.T) {
	intent := succeededIntent()
	intent.UserID = uuid.New()

	svc := NewService(&fakeSalesRepo{}, &fakePaymentService{intent: intent}, &fakeSeatService{held: heldSeats()})

	_, err := svc.CompletePurchase(context.Background(), testUserID.String(), testEventID.String(), "pi_test")
	assert.ErrorIs(t, err, ErrIntentMismatch)
}

func TestCommitSaleWithNoHeldSeats(t *testing.T) {
	svc := NewService(&fakeSalesRepo{}, &fakePaymentService{intent: succeededIntent()}, &fakeSeatService{})

	_, err := svc.CompletePurchase(context.Background(), testUserID.String(), testEventID.String(), "pi_test")
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestCommitSaleConflictKeepsHolds(t *testing.T) {
	seatService := &fakeSeatService{held: heldSeats()}
	repo := &fakeSalesRepo{commitErr: ErrCommitConflict}
	svc := NewService(repo, &fakePaymentService{intent: succeededIntent()}, seatService)

	_, err := svc.CompletePurchase(context.Background(), testUserID.String(), testEventID.String(), "pi_test")
	assert.ErrorIs(t, err, ErrCommitConflict)
	assert.Zero(t, seatService.releasedCalls)
}

func TestCommitSaleRejectsSeatNotHeld(t *testing.T) {
	svc := NewService(&fakeSalesRepo{}, &fakePaymentService{intent: succeededIntent()}, &fakeSeatService{held: heldSeats()})

	_, err := svc.CommitSale(context.Background(), testUserID.String(), testEventID.String(), "pi_test",
		[]seats.SeatID{{Row: "Z", Number: 9}})
	assert.ErrorIs(t, err, ErrCommitConflict)
}
