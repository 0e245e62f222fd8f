package constants

import (
	"fmt"
	"time"
)

// Centralized Redis key builders and TTL values.
// Pattern: tessera:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_EVENT_DETAIL   = 2 * time.Hour   // event metadata rarely changes
	TTL_EVENT_LIST     = 1 * time.Hour   // event listings
	TTL_SEAT_ROWS      = 5 * time.Minute // base seat rows (price/SOLD state)
	TTL_LIVE_SEAT_VIEW = 30 * time.Second
)

// ================== KEY PREFIXES ==================

const CachePrefix = "tessera"

const (
	CacheKeyEventDetail = CachePrefix + ":events:detail:"   // + event-id
	CacheKeyEventList   = CachePrefix + ":events:list"      // + :filters
	CacheKeySeatRows    = CachePrefix + ":seats:rows:"      // + event-id
)

// ================== SEAT HOLD KEYS ==================

// Seat holds live only in Redis; key expiry is the reservation-hold TTL.
const (
	seatHoldKeyFmt  = CachePrefix + ":seats:hold:%s:%s:%d"   // event-id, row, number
	userHoldsKeyFmt = CachePrefix + ":seats:user_holds:%s:%s" // event-id, user-id
)

// BuildSeatHoldKey returns the hold key for one seat of one event
func BuildSeatHoldKey(eventID, rowName string, seatNumber int) string {
	return fmt.Sprintf(seatHoldKeyFmt, eventID, rowName, seatNumber)
}

// BuildUserHoldsKey returns the per-user hold set key for one event
func BuildUserHoldsKey(eventID, userID string) string {
	return fmt.Sprintf(userHoldsKeyFmt, eventID, userID)
}

// BuildSeatRowsCacheKey returns the cache key for an event's base seat rows
func BuildSeatRowsCacheKey(eventID string) string {
	return CacheKeySeatRows + eventID
}

// BuildEventDetailCacheKey returns the cache key for one event's metadata
func BuildEventDetailCacheKey(eventID string) string {
	return CacheKeyEventDetail + eventID
}
