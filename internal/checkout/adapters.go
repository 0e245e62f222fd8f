package checkout

import (
	"context"
	"errors"
	"fmt"

	"tessera/internal/payments"
	"tessera/internal/reservation"
	"tessera/internal/sales"
	"tessera/internal/seats"
)

// seatStoreAdapter exposes the seat service as the session's seat
// store, translating its errors into the session taxonomy
type seatStoreAdapter struct {
	service seats.Service
}

func NewSeatStore(service seats.Service) reservation.SeatStore {
	return &seatStoreAdapter{service: service}
}

func (a *seatStoreAdapter) SeatMap(ctx context.Context, eventID, userID string) (seats.SeatMap, error) {
	resp, err := a.service.GetSeatMap(ctx, eventID, userID)
	if err != nil {
		return nil, translateSeatError(err)
	}
	return resp.Seats, nil
}

func (a *seatStoreAdapter) Reserve(ctx context.Context, eventID, userID string, seat seats.SeatID) error {
	if _, err := a.service.Reserve(ctx, eventID, userID, seat); err != nil {
		return translateSeatError(err)
	}
	return nil
}

func (a *seatStoreAdapter) Release(ctx context.Context, eventID, userID string, seat seats.SeatID) error {
	if _, err := a.service.Release(ctx, eventID, userID, seat); err != nil {
		return translateSeatError(err)
	}
	return nil
}

func translateSeatError(err error) error {
	switch {
	case errors.Is(err, seats.ErrEventNotFound):
		return reservation.ErrEventNotFound
	case errors.Is(err, seats.ErrSeatNotFound):
		return reservation.ErrSeatUnknown
	case errors.Is(err, seats.ErrSeatSold):
		return reservation.ErrSeatSold
	case errors.Is(err, seats.ErrSeatConflict):
		return reservation.ErrSeatConflict
	default:
		return fmt.Errorf("%w: %v", reservation.ErrStoreUnreachable, err)
	}
}

// staticIdentity binds a session to the user already authenticated by
// the request middleware
type staticIdentity struct {
	userID string
}

func NewIdentity(userID string) reservation.Identity {
	return &staticIdentity{userID: userID}
}

func (i *staticIdentity) UserID(ctx context.Context) (string, error) {
	if i.userID == "" {
		return "", reservation.ErrUnauthorized
	}
	return i.userID, nil
}

// gatewayAdapter exposes the payment service as the checkout gateway
type gatewayAdapter struct {
	service payments.Service
}

func NewGateway(service payments.Service) Gateway {
	return &gatewayAdapter{service: service}
}

func (a *gatewayAdapter) CreateIntent(ctx context.Context, userID, eventID string, amount int64, currency string) (*Intent, error) {
	intent, err := a.service.CreateIntent(ctx, userID, eventID, amount, currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}

func (a *gatewayAdapter) ConfirmPayment(ctx context.Context, intentID, clientSecret string, card CardDetails) error {
	err := a.service.Confirm(ctx, intentID, clientSecret, payments.Card{
		Number:   card.Number,
		ExpMonth: card.ExpMonth,
		ExpYear:  card.ExpYear,
		CVC:      card.CVC,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, payments.ErrCardDeclined):
		return ErrCardDeclined
	case errors.Is(err, payments.ErrProcessorError):
		return ErrProcessorError
	default:
		return fmt.Errorf("%w: %v", ErrProcessorError, err)
	}
}

// ledgerAdapter exposes the sales service as the checkout ledger
type ledgerAdapter struct {
	service sales.Service
}

func NewLedger(service sales.Service) Ledger {
	return &ledgerAdapter{service: service}
}

func (a *ledgerAdapter) CommitSale(ctx context.Context, userID, eventID, intentID string, seatIDs []seats.SeatID) (string, error) {
	sale, err := a.service.CommitSale(ctx, userID, eventID, intentID, seatIDs)
	if err != nil {
		if errors.Is(err, sales.ErrCommitConflict) {
			return "", ErrCommitConflict
		}
		return "", fmt.Errorf("%w: %v", ErrProcessorError, err)
	}
	return sale.ID.String(), nil
}
