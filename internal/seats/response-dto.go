package seats

import "time"

// SeatMapResponse is the full seat layout of an event as one user sees
// it, holds included
type SeatMapResponse struct {
	EventID        string  `json:"event_id"`
	Seats          SeatMap `json:"seats"`
	HoldTTLSeconds int     `json:"hold_ttl_seconds"`
}

// SeatActionResponse reports the outcome of a reserve or release
type SeatActionResponse struct {
	Seat       string    `json:"seat"`
	Status     Status    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at,omitempty"`
	TTLSeconds int       `json:"ttl_seconds,omitempty"`
}

// ProvisionSeatsResponse reports how many seats a layout created
type ProvisionSeatsResponse struct {
	EventID string `json:"event_id"`
	Created int    `json:"created"`
}
