package sales

import (
	"context"
	"errors"
	"fmt"

	"tessera/internal/payments"
	"tessera/internal/seats"
	"tessera/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrIntentMismatch      = errors.New("payment intent does not match purchase")
	ErrNoSeats             = errors.New("no seats to purchase")
)

// Notifier publishes committed sales to interested consumers
type Notifier interface {
	SaleCommitted(ctx context.Context, sale *Sale) error
}

// Service turns confirmed payments into committed sales
type Service interface {
	CommitSale(ctx context.Context, userID, eventID, intentID string, seatIDs []seats.SeatID) (*Sale, error)
	CompletePurchase(ctx context.Context, userID, eventID, intentID string) (*Sale, error)
	ListUserSales(ctx context.Context, userID string) ([]Sale, error)
}

type service struct {
	repo           Repository
	paymentService payments.Service
	seatService    seats.Service
	notifier       Notifier
}

func NewService(repo Repository, paymentService payments.Service, seatService seats.Service) *service {
	return &service{
		repo:           repo,
		paymentService: paymentService,
		seatService:    seatService,
	}
}

// SetNotifier enables sale-committed notifications
func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) CommitSale(ctx context.Context, userID, eventID, intentID string, seatIDs []seats.SeatID) (*Sale, error) {
	if len(seatIDs) == 0 {
		return nil, ErrNoSeats
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, seats.ErrEventNotFound
	}

	intent, err := s.paymentService.GetIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.UserID != uid || intent.EventID != eid {
		return nil, ErrIntentMismatch
	}
	if !intent.IsSucceeded() {
		return nil, ErrPaymentNotConfirmed
	}

	seatRecords, err := s.seatService.HeldSeats(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	prices := make(map[seats.SeatID]seats.Seat, len(seatRecords))
	for _, record := range seatRecords {
		prices[seats.SeatID{Row: record.RowName, Number: record.SeatNumber}] = record
	}

	sale := &Sale{
		PaymentIntentID: intent.ID,
		EventID:         eid,
		UserID:          uid,
		TotalAmount:     intent.Amount,
		Currency:        intent.Currency,
	}
	for _, id := range seatIDs {
		record, held := prices[id]
		if !held {
			return nil, ErrCommitConflict
		}
		sale.Seats = append(sale.Seats, SaleSeat{
			RowName:    id.Row,
			SeatNumber: id.Number,
			Price:      record.Price,
		})
	}

	if err := s.repo.CommitSale(ctx, sale, seatIDs); err != nil {
		return nil, err
	}

	if err := s.seatService.ReleaseHolds(ctx, eventID, userID, seatIDs); err != nil {
		logger.GetDefault().Warn("failed to clear holds after sale", "sale_id", sale.ID.String(), "error", err)
	}

	logger.GetDefault().LogSaleCommitted(ctx, sale.ID.String(), eventID, userID, intent.ID)

	if s.notifier != nil {
		if err := s.notifier.SaleCommitted(ctx, sale); err != nil {
			logger.GetDefault().Warn("failed to publish sale notification", "sale_id", sale.ID.String(), "error", err)
		}
	}

	return sale, nil
}

func (s *service) CompletePurchase(ctx context.Context, userID, eventID, intentID string) (*Sale, error) {
	held, err := s.seatService.HeldSeats(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	seatIDs := make([]seats.SeatID, len(held))
	for i, record := range held {
		seatIDs[i] = seats.SeatID{Row: record.RowName, Number: record.SeatNumber}
	}

	return s.CommitSale(ctx, userID, eventID, intentID, seatIDs)
}

func (s *service) ListUserSales(ctx context.Context, userID string) ([]Sale, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	return s.repo.ListByUser(ctx, uid)
}
