package checkout

import (
	"context"
	"errors"
	"time"

	"tessera/internal/reservation"
	"tessera/internal/seats"
	"tessera/pkg/logger"
	"tessera/pkg/metrics"
)

// Gateway creates payment intents and charges them
type Gateway interface {
	CreateIntent(ctx context.Context, userID, eventID string, amount int64, currency string) (*Intent, error)
	ConfirmPayment(ctx context.Context, intentID, clientSecret string, card CardDetails) error
}

// Ledger commits a confirmed payment into a sale, marking the seats
// sold. Commit is idempotent per payment intent.
type Ledger interface {
	CommitSale(ctx context.Context, userID, eventID, intentID string, seatIDs []seats.SeatID) (string, error)
}

// Orchestrator drives a checkout through its phases: amount
// computation, intent creation, payment confirmation, sale commit.
// Failures before the charge abort cleanly; failures after the charge
// are surfaced as retryable or terminal, never silently dropped.
type Orchestrator struct {
	gateway  Gateway
	ledger   Ledger
	identity reservation.Identity
	currency string
}

func NewOrchestrator(gateway Gateway, ledger Ledger, identity reservation.Identity, currency string) *Orchestrator {
	return &Orchestrator{
		gateway:  gateway,
		ledger:   ledger,
		identity: identity,
		currency: currency,
	}
}

// Run executes one full checkout for the session's current selection
func (o *Orchestrator) Run(ctx context.Context, session *reservation.Session, card CardDetails) *Result {
	started := time.Now()
	result := o.run(ctx, session, card)
	metrics.ObserveCheckoutDuration(time.Since(started).Seconds())
	metrics.RecordCheckoutOutcome(string(result.State), string(result.Reason))
	return result
}

func (o *Orchestrator) run(ctx context.Context, session *reservation.Session, card CardDetails) *Result {
	fsm := newMachine()

	// Phase 1: amount. An empty selection fails before any network
	// call is made.
	if session.SelectionEmpty() {
		return o.fail(fsm, ReasonEmptySelection, nil)
	}
	selected := session.Selected()
	amount := session.ComputeTotal()
	if err := fsm.advance(StateAmountComputed); err != nil {
		return o.fail(fsm, ReasonProcessorError, err)
	}

	userID, err := o.identity.UserID(ctx)
	if err != nil {
		return o.failWith(fsm, ReasonAuthExpired, err, amount, selected)
	}

	// Phase 2: intent
	intent, err := o.gateway.CreateIntent(ctx, userID, session.EventID(), amount, o.currency)
	if err != nil {
		return o.failWith(fsm, reasonForGatewayError(err), err, amount, selected)
	}
	if err := fsm.advance(StateIntentCreated); err != nil {
		return o.fail(fsm, ReasonProcessorError, err)
	}

	// Phase 3: charge
	if err := o.gateway.ConfirmPayment(ctx, intent.ID, intent.ClientSecret, card); err != nil {
		result := o.failWith(fsm, reasonForGatewayError(err), err, amount, selected)
		result.IntentID = intent.ID
		return result
	}
	if err := fsm.advance(StatePaymentConfirmed); err != nil {
		return o.fail(fsm, ReasonProcessorError, err)
	}

	// Phase 4: commit. The charge already happened; from here a
	// transport failure is retryable and a conflict is terminal.
	saleID, err := o.ledger.CommitSale(ctx, userID, session.EventID(), intent.ID, selected)
	if err != nil {
		result := o.failWith(fsm, reasonForCommitError(err), err, amount, selected)
		result.IntentID = intent.ID
		result.RetryCommit = result.Reason == ReasonGatewayUnavailable
		if result.Reason == ReasonPostChargeConflict {
			logger.GetDefault().LogPostChargeConflict(ctx, intent.ID, session.EventID(), userID, err)
		}
		return result
	}
	if err := fsm.advance(StateSaleCommitted); err != nil {
		return o.fail(fsm, ReasonProcessorError, err)
	}

	session.MarkSold(selected)
	logger.GetDefault().LogSaleCommitted(ctx, saleID, session.EventID(), userID, intent.ID)

	return &Result{
		State:    StateSaleCommitted,
		Amount:   amount,
		Currency: o.currency,
		IntentID: intent.ID,
		SaleID:   saleID,
		Seats:    selected,
	}
}

// RetryCommit retries only the sale commit of a checkout whose charge
// succeeded but whose commit was unreachable
func (o *Orchestrator) RetryCommit(ctx context.Context, session *reservation.Session, prior *Result) *Result {
	if !prior.RetryCommit || prior.IntentID == "" {
		return prior
	}

	userID, err := o.identity.UserID(ctx)
	if err != nil {
		return &Result{
			State:    StateFailed,
			Reason:   ReasonAuthExpired,
			Amount:   prior.Amount,
			IntentID: prior.IntentID,
			Seats:    prior.Seats,
		}
	}

	saleID, err := o.ledger.CommitSale(ctx, userID, session.EventID(), prior.IntentID, prior.Seats)
	if err != nil {
		reason := reasonForCommitError(err)
		if reason == ReasonPostChargeConflict {
			logger.GetDefault().LogPostChargeConflict(ctx, prior.IntentID, session.EventID(), userID, err)
		}
		result := &Result{
			State:       StateFailed,
			Reason:      reason,
			Amount:      prior.Amount,
			IntentID:    prior.IntentID,
			Seats:       prior.Seats,
			RetryCommit: reason == ReasonGatewayUnavailable,
		}
		metrics.RecordCheckoutOutcome(string(result.State), string(result.Reason))
		return result
	}

	session.MarkSold(prior.Seats)
	logger.GetDefault().LogSaleCommitted(ctx, saleID, session.EventID(), userID, prior.IntentID)

	result := &Result{
		State:    StateSaleCommitted,
		Amount:   prior.Amount,
		Currency: o.currency,
		IntentID: prior.IntentID,
		SaleID:   saleID,
		Seats:    prior.Seats,
	}
	metrics.RecordCheckoutOutcome(string(result.State), "")
	return result
}

func (o *Orchestrator) fail(fsm *machine, reason FailureReason, err error) *Result {
	return o.failWith(fsm, reason, err, 0, nil)
}

func (o *Orchestrator) failWith(fsm *machine, reason FailureReason, err error, amount int64, selected []seats.SeatID) *Result {
	if !fsm.state.IsTerminal() {
		fsm.state = StateFailed
	}
	if err != nil {
		logger.GetDefault().Warn("checkout failed", "reason", string(reason), "error", err)
	}
	return &Result{
		State:  StateFailed,
		Reason: reason,
		Amount: amount,
		Seats:  selected,
	}
}

func reasonForGatewayError(err error) FailureReason {
	switch {
	case errors.Is(err, ErrCardDeclined):
		return ReasonCardDeclined
	case errors.Is(err, ErrGatewayUnavailable):
		return ReasonGatewayUnavailable
	default:
		return ReasonProcessorError
	}
}

func reasonForCommitError(err error) FailureReason {
	switch {
	case errors.Is(err, ErrCommitConflict):
		return ReasonPostChargeConflict
	case errors.Is(err, ErrGatewayUnavailable):
		return ReasonGatewayUnavailable
	default:
		return ReasonProcessorError
	}
}
