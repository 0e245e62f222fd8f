package reservation

import (
	"context"
	"sync"

	"tessera/internal/seats"
)

// SeatStore is the remote authority for seat state. Implementations
// decide the outcome of every reserve and release; the session only
// mirrors what the store confirmed.
type SeatStore interface {
	SeatMap(ctx context.Context, eventID, userID string) (seats.SeatMap, error)
	Reserve(ctx context.Context, eventID, userID string, seat seats.SeatID) error
	Release(ctx context.Context, eventID, userID string, seat seats.SeatID) error
}

// Identity resolves the authenticated user behind a session
type Identity interface {
	UserID(ctx context.Context) (string, error)
}

// Session tracks one user's live interaction with one event's seat
// map: the current map, the seats they hold, and in-flight toggles.
// Toggle direction is decided by the session's own selection, not by
// the seat's displayed state.
type Session struct {
	store    SeatStore
	identity Identity
	registry *Registry
	eventID  string

	mu        sync.Mutex
	seatMap   seats.SeatMap
	selection *Selection
	inflight  map[seats.SeatID]bool
}

func NewSession(store SeatStore, identity Identity, eventID string) *Session {
	return &Session{
		store:     store,
		identity:  identity,
		registry:  NewRegistry(),
		eventID:   eventID,
		selection: NewSelection(),
		inflight:  make(map[seats.SeatID]bool),
	}
}

// EventID returns the event this session is bound to
func (s *Session) EventID() string {
	return s.eventID
}

// Subscribe returns a channel of session snapshots
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	return s.registry.Subscribe()
}

// LoadSeatMap fetches the authoritative seat map and rebuilds the
// selection from the seats the store says this user holds
func (s *Session) LoadSeatMap(ctx context.Context) (seats.SeatMap, error) {
	userID, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	seatMap, err := s.store.SeatMap(ctx, s.eventID, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.seatMap = seatMap
	s.selection.Clear()
	for _, row := range seatMap.Rows() {
		for _, number := range seatMap.Numbers(row) {
			view := seatMap[row][number]
			if view.Status == seats.StatusReserved && view.Mine {
				s.selection.Add(seats.SeatID{Row: row, Number: number}, view.Price)
			}
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.registry.Publish(snapshot)
	return seatMap.Clone(), nil
}

// ToggleSeat reserves the seat when it is not in the selection and
// releases it when it is. The local state changes only after the store
// confirms; a failed toggle leaves map and selection untouched.
func (s *Session) ToggleSeat(ctx context.Context, id seats.SeatID) error {
	userID, err := s.identity.UserID(ctx)
	if err != nil {
		return ErrUnauthorized
	}

	s.mu.Lock()
	if s.seatMap == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	view, ok := s.seatMap.Get(id)
	if !ok {
		s.mu.Unlock()
		return ErrSeatUnknown
	}
	if view.Status == seats.StatusSold {
		s.mu.Unlock()
		return ErrSeatSold
	}
	if s.inflight[id] {
		s.mu.Unlock()
		return ErrToggleInFlight
	}
	s.inflight[id] = true
	releasing := s.selection.Contains(id)
	s.mu.Unlock()

	if releasing {
		err = s.store.Release(ctx, s.eventID, userID, id)
	} else {
		err = s.store.Reserve(ctx, s.eventID, userID, id)
	}

	s.mu.Lock()
	delete(s.inflight, id)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if releasing {
		s.selection.Remove(id)
		s.seatMap.Apply(id, seats.SeatView{Status: seats.StatusAvailable, Price: view.Price})
	} else {
		s.selection.Add(id, view.Price)
		s.seatMap.Apply(id, seats.SeatView{Status: seats.StatusReserved, Price: view.Price, Mine: true})
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.registry.Publish(snapshot)
	return nil
}

// Selected returns the held seats in pick order
func (s *Session) Selected() []seats.SeatID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Seats()
}

// ComputeTotal returns the selection total in minor currency units
func (s *Session) ComputeTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.TotalMinorUnits()
}

// SelectionEmpty reports whether the session holds any seats
func (s *Session) SelectionEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsEmpty()
}

// MarkSold transitions the given seats to SOLD and drops them from the
// selection, typically after a committed sale
func (s *Session) MarkSold(ids []seats.SeatID) {
	s.mu.Lock()
	if s.seatMap == nil {
		s.mu.Unlock()
		return
	}
	for _, id := range ids {
		view, ok := s.seatMap.Get(id)
		if !ok {
			continue
		}
		s.seatMap[id.Row][id.Number] = seats.SeatView{Status: seats.StatusSold, Price: view.Price}
		s.selection.Remove(id)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.registry.Publish(snapshot)
}

// Snapshot returns the current session view
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	var seatMap seats.SeatMap
	if s.seatMap != nil {
		seatMap = s.seatMap.Clone()
	}
	return Snapshot{
		SeatMap:  seatMap,
		Selected: s.selection.Seats(),
	}
}
