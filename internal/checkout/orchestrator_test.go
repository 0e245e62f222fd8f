package checkout

import (
	"context"
	"testing"

	"tessera/internal/reservation"
	"tessera/internal/seats"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	prices  map[seats.SeatID]decimal.Decimal
	holders map[seats.SeatID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prices: map[seats.SeatID]decimal.Decimal{
			{Row: "A", Number: 1}: decimal.NewFromFloat(25.00),
			{Row: "A", Number: 2}: decimal.NewFromFloat(40.50),
		},
		holders: make(map[seats.SeatID]string),
	}
}

func (f *fakeStore) SeatMap(ctx context.Context, eventID, userID string) (seats.SeatMap, error) {
	seatMap := make(seats.SeatMap)
	for id, price := range f.prices {
		if seatMap[id.Row] == nil {
			seatMap[id.Row] = make(map[int]seats.SeatView)
		}
		view := seats.SeatView{Status: seats.StatusAvailable, Price: price}
		if holder, held := f.holders[id]; held {
			view.Status = seats.StatusReserved
			view.Mine = holder == userID
		}
		seatMap[id.Row][id.Number] = view
	}
	return seatMap, nil
}

func (f *fakeStore) Reserve(ctx context.Context, eventID, userID string, seat seats.SeatID) error {
	f.holders[seat] = userID
	return nil
}

func (f *fakeStore) Release(ctx context.Context, eventID, userID string, seat seats.SeatID) error {
	delete(f.holders, seat)
	return nil
}

type fakeGateway struct {
	createErr    error
	confirmErr   error
	createCalls  int
	confirmCalls int
	lastAmount   int64
}

func (f *fakeGateway) CreateIntent(ctx context.Context, userID, eventID string, amount int64, currency string) (*Intent, error) {
	f.createCalls++
	f.lastAmount = amount
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &Intent{
		ID:           "pi_test",
		ClientSecret: "pi_secret_test",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (f *fakeGateway) ConfirmPayment(ctx context.Context, intentID, clientSecret string, card CardDetails) error {
	f.confirmCalls++
	return f.confirmErr
}

type fakeLedger struct {
	commitErrs  []error
	commitCalls int
}

func (f *fakeLedger) CommitSale(ctx context.Context, userID, eventID, intentID string, seatIDs []seats.SeatID) (string, error) {
	f.commitCalls++
	if len(f.commitErrs) > 0 {
		err := f.commitErrs[0]
		f.commitErrs = f.commitErrs[1:]
		if err != nil {
			return "", err
		}
	}
	return "sale-1", nil
}

type countingIdentity struct {
	userID    string
	failAfter int
	calls     int
}

func (c *countingIdentity) UserID(ctx context.Context) (string, error) {
	c.calls++
	if c.failAfter > 0 && c.calls > c.failAfter {
		return "", reservation.ErrUnauthorized
	}
	return c.userID, nil
}

var testCard = CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

func checkoutFixture(t *testing.T) (*fakeStore, *reservation.Session, *countingIdentity) {
	t.Helper()
	store := newFakeStore()
	identity := &countingIdentity{userID: "alice"}
	session := reservation.NewSession(store, identity, "evt-1")
	_, err := session.LoadSeatMap(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.ToggleSeat(context.Background(), seats.SeatID{Row: "A", Number: 1}))
	require.NoError(t, session.ToggleSeat(context.Background(), seats.SeatID{Row: "A", Number: 2}))
	return store, session, identity
}

func TestCheckoutHappyPath(t *testing.T) {
	_, session, identity := checkoutFixture(t)
	gateway := &fakeGateway{}
	ledger := &fakeLedger{}

	result := NewOrchestrator(gateway, ledger, identity, "usd").Run(context.Background(), session, testCard)

	assert.Equal(t, StateSaleCommitted, result.State)
	assert.True(t, result.Succeeded())
	assert.Equal(t, int64(6550), result.Amount)
	assert.Equal(t, "sale-1", result.SaleID)
	assert.Len(t, result.Seats, 2)

	// Selection cleared and the seats terminal in the session view
	assert.True(t, session.SelectionEmpty())
	view, _ := session.Snapshot().SeatMap.Get(seats.SeatID{Row: "A", Number: 1})
	assert.Equal(t, seats.StatusSold, view.Status)
}

func TestCheckoutEmptySelectionFailsOffline(t *testing.T) {
	store := newFakeStore()
	identity := &countingIdentity{userID: "alice"}
	session := reservation.NewSession(store, identity, "evt-1")
	_, err := session.LoadSeatMap(context.Background())
	require.NoError(t, err)

	gateway := &fakeGateway{}
	ledger := &fakeLedger{}
	result := NewOrchestrator(gateway, ledger, identity, "usd").Run(context.Background(), session, testCard)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, ReasonEmptySelection, result.Reason)
	assert.Zero(t, gateway.createCalls)
	assert.Zero(t, ledger.commitCalls)
}

func TestCheckoutAuthExpired(t *testing.T) {
	_, session, identity := checkoutFixture(t)
	identity.failAfter = identity.calls

	gateway := &fakeGateway{}
	result := NewOrchestrator(gateway, &fakeLedger{}, identity, "usd").Run(context.Background(), session, testCard)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, ReasonAuthExpired, result.Reason)
	assert.Zero(t, gateway.createCalls)
}

func TestCheckoutCardDeclined(t *testing.T) {
	_, session, identity := checkoutFixture(t)
	gateway := &fakeGateway{confirmErr: ErrCardDeclined}
	ledger := &fakeLedger{}

	result := NewOrchestrator(gateway, ledger, identity, "usd").Run(context.Background(), session, testCard)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, ReasonCardDeclined, result.Reason)
	assert.Zero(t, ledger.commitCalls)

	// Selection survives a declined charge
	assert.Len(t, session.Selected(), 2)
}

func TestCheckoutGatewayDownBeforeCharge(t *testing.T) {
	_, session, identity := checkoutFixture(t)
	gateway := &fakeGateway{createErr: ErrGatewayUnavailable}

	result := NewOrchestrator(gateway, &fakeLedger{}, identity, "usd").Run(context.Background(), session, testCard)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, ReasonGatewayUnavailable, result.Reason)
	assert.False(t, result.RetryCommit)
}

func TestCheckoutPostChargeConflict(t *testing.T) {
	_, session, identity := checkoutFixture(t)
	gateway := &fakeGateway{}
	ledger := &fakeLedger{commitErrs: []error{ErrCommitConflict}}

	result := NewOrchestrator(gateway, ledger, identity, "usd").Run(context.Background(), session, testCard)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, ReasonPostChargeConflict, result.Reason)
	assert.Equal(t, "pi_test", result.IntentID)
	assert.False(t, result.RetryCommit)
	assert.Equal(t, 1, gateway.confirmCalls)
}

func TestCheckoutCommitRetryAfterOutage(t *testing.T) {
	_, session, identity := checkoutFixture(t)
	gateway := &fakeGateway{}
	ledger := &fakeLedger{commitErrs: []error{ErrGatewayUnavailable}}

	orchestrator := NewOrchestrator(gateway, ledger, identity, "usd")
	result := orchestrator.Run(context.Background(), session, testCard)

	require.Equal(t, StateFailed, result.State)
	require.Equal(t, ReasonGatewayUnavailable, result.Reason)
	require.True(t, result.RetryCommit)
	require.Equal(t, "pi_test", result.IntentID)

	// Only the commit is retried, the card is never charged twice
	retried := orchestrator.RetryCommit(context.Background(), session, result)
	assert.Equal(t, StateSaleCommitted, retried.State)
	assert.Equal(t, "sale-1", retried.SaleID)
	assert.Equal(t, 1, gateway.confirmCalls)
	assert.Equal(t, 2, ledger.commitCalls)
	assert.True(t, session.SelectionEmpty())
}
