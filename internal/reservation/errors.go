package reservation

import "errors"

// Session error taxonomy. Conflict errors clear once the competing
// hold lapses; ErrSeatSold is terminal for the seat.
var (
	ErrUnauthorized     = errors.New("user not authenticated")
	ErrEventNotFound    = errors.New("event not found")
	ErrSeatUnknown      = errors.New("seat not in seat map")
	ErrSeatSold         = errors.New("seat already sold")
	ErrSeatConflict     = errors.New("seat held by another user")
	ErrToggleInFlight   = errors.New("toggle already in flight for seat")
	ErrStoreUnreachable = errors.New("seat store unreachable")
	ErrNotLoaded        = errors.New("seat map not loaded")
)
