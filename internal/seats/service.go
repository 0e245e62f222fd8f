package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tessera/internal/shared/constants"
	"tessera/pkg/cache"
	"tessera/pkg/logger"
	"tessera/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrSeatNotFound  = errors.New("seat not found")
	ErrSeatSold      = errors.New("seat already sold")
	ErrSeatConflict  = errors.New("seat held by another user")
)

// Service manages the live seat state of events: the persistent
// AVAILABLE/SOLD rows merged with the Redis reservation holds
type Service interface {
	ProvisionSeats(ctx context.Context, eventID string, req ProvisionSeatsRequest) (int, error)
	GetSeatMap(ctx context.Context, eventID, userID string) (*SeatMapResponse, error)
	Reserve(ctx context.Context, eventID, userID string, seat SeatID) (*SeatActionResponse, error)
	Release(ctx context.Context, eventID, userID string, seat SeatID) (*SeatActionResponse, error)
	HeldSeats(ctx context.Context, eventID, userID string) ([]Seat, error)
	ReleaseHolds(ctx context.Context, eventID, userID string, seatIDs []SeatID) error
}

type service struct {
	repo         Repository
	atomic       *AtomicRedisOperations
	cacheService cache.Service
	holdTTL      time.Duration
}

func NewService(repo Repository, atomic *AtomicRedisOperations, holdTTL time.Duration) *service {
	return &service{
		repo:    repo,
		atomic:  atomic,
		holdTTL: holdTTL,
	}
}

// SetCacheService enables the read-through cache for base seat rows
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ProvisionSeats(ctx context.Context, eventID string, req ProvisionSeatsRequest) (int, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return 0, ErrEventNotFound
	}

	seats := make([]Seat, 0, len(req.Rows)*req.SeatsPerRow)
	for _, row := range req.Rows {
		for number := 1; number <= req.SeatsPerRow; number++ {
			seats = append(seats, Seat{
				EventID:    eid,
				RowName:    row.Name,
				SeatNumber: number,
				Price:      row.Price,
				Status:     StatusAvailable,
			})
		}
	}

	if err := s.repo.CreateSeats(ctx, seats); err != nil {
		return 0, err
	}

	s.invalidateSeatRows(ctx, eventID)
	return len(seats), nil
}

func (s *service) GetSeatMap(ctx context.Context, eventID, userID string) (*SeatMapResponse, error) {
	baseSeats, err := s.loadBaseSeats(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seatIDs := make([]SeatID, len(baseSeats))
	for i, seat := range baseSeats {
		seatIDs[i] = SeatID{Row: seat.RowName, Number: seat.SeatNumber}
	}

	holders, err := s.atomic.HoldersFor(ctx, eventID, seatIDs)
	if err != nil {
		return nil, err
	}
	metrics.SetHeldSeats(float64(len(holders)))

	seatMap := make(SeatMap)
	for i, seat := range baseSeats {
		if seatMap[seat.RowName] == nil {
			seatMap[seat.RowName] = make(map[int]SeatView)
		}

		view := SeatView{Status: StatusAvailable, Price: seat.Price}
		if seat.IsSold() {
			view.Status = StatusSold
		} else if holder, held := holders[seatIDs[i]]; held {
			view.Status = StatusReserved
			view.Mine = holder == userID
		}

		seatMap[seat.RowName][seat.SeatNumber] = view
	}

	return &SeatMapResponse{
		EventID:        eventID,
		Seats:          seatMap,
		HoldTTLSeconds: int(s.holdTTL.Seconds()),
	}, nil
}

func (s *service) Reserve(ctx context.Context, eventID, userID string, seat SeatID) (*SeatActionResponse, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	record, err := s.repo.GetSeat(ctx, eid, seat)
	if err != nil {
		metrics.RecordSeatToggle("reserve", "not_found")
		return nil, err
	}
	if record.IsSold() {
		metrics.RecordSeatToggle("reserve", "sold")
		return nil, ErrSeatSold
	}

	if err := s.atomic.ClaimSeat(ctx, eventID, userID, seat, s.holdTTL); err != nil {
		if errors.Is(err, ErrSeatConflict) {
			metrics.RecordSeatToggle("reserve", "conflict")
			return nil, ErrSeatConflict
		}
		metrics.RecordSeatToggle("reserve", "error")
		return nil, fmt.Errorf("failed to reserve seat %s: %w", seat, err)
	}

	metrics.RecordSeatToggle("reserve", "success")
	logger.GetDefault().LogSeatClaimed(ctx, eventID, seat.String(), userID)

	return &SeatActionResponse{
		Seat:       seat.String(),
		Status:     StatusReserved,
		ExpiresAt:  time.Now().Add(s.holdTTL),
		TTLSeconds: int(s.holdTTL.Seconds()),
	}, nil
}

func (s *service) Release(ctx context.Context, eventID, userID string, seat SeatID) (*SeatActionResponse, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	record, err := s.repo.GetSeat(ctx, eid, seat)
	if err != nil {
		metrics.RecordSeatToggle("release", "not_found")
		return nil, err
	}
	if record.IsSold() {
		metrics.RecordSeatToggle("release", "sold")
		return nil, ErrSeatSold
	}

	if err := s.atomic.ReleaseSeat(ctx, eventID, userID, seat); err != nil {
		if errors.Is(err, ErrSeatConflict) {
			metrics.RecordSeatToggle("release", "conflict")
			return nil, ErrSeatConflict
		}
		metrics.RecordSeatToggle("release", "error")
		return nil, fmt.Errorf("failed to release seat %s: %w", seat, err)
	}

	metrics.RecordSeatToggle("release", "success")
	logger.GetDefault().LogSeatReleased(ctx, eventID, seat.String(), userID)

	return &SeatActionResponse{
		Seat:   seat.String(),
		Status: StatusAvailable,
	}, nil
}

func (s *service) HeldSeats(ctx context.Context, eventID, userID string) ([]Seat, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	held, err := s.atomic.UserHolds(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if len(held) == 0 {
		return []Seat{}, nil
	}

	return s.repo.GetSeats(ctx, eid, held)
}

func (s *service) ReleaseHolds(ctx context.Context, eventID, userID string, seatIDs []SeatID) error {
	if err := s.atomic.ClearUserHolds(ctx, eventID, userID, seatIDs); err != nil {
		return fmt.Errorf("failed to clear holds: %w", err)
	}
	s.invalidateSeatRows(ctx, eventID)
	return nil
}

func (s *service) loadBaseSeats(ctx context.Context, eventID string) ([]Seat, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if s.cacheService != nil {
		var cached []Seat
		if err := s.cacheService.Get(ctx, constants.BuildSeatRowsCacheKey(eventID), &cached); err == nil {
			return cached, nil
		}
	}

	baseSeats, err := s.repo.ListByEvent(ctx, eid)
	if err != nil {
		return nil, err
	}
	if len(baseSeats) == 0 {
		return nil, ErrEventNotFound
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, constants.BuildSeatRowsCacheKey(eventID), baseSeats, constants.TTL_SEAT_ROWS); err != nil {
			logger.GetDefault().Debug("failed to cache seat rows", "error", err)
		}
	}

	return baseSeats, nil
}

func (s *service) invalidateSeatRows(ctx context.Context, eventID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildSeatRowsCacheKey(eventID)); err != nil {
		logger.GetDefault().Debug("failed to invalidate seat rows cache", "error", err)
	}
}
