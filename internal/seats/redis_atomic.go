package seats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tessera/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// AtomicRedisOperations handles atomic Redis operations for seat holds
type AtomicRedisOperations struct {
	redis *redis.Client
}

// NewAtomicRedisOperations creates a new atomic Redis operations handler
func NewAtomicRedisOperations(redisClient *redis.Client) *AtomicRedisOperations {
	return &AtomicRedisOperations{
		redis: redisClient,
	}
}

// Lua script for claiming a single seat. Re-claiming a seat you already
// hold refreshes the hold TTL instead of failing; a seat held by anyone
// else is a conflict.
const luaSeatClaim = `
-- KEYS[1] = seat hold key
-- KEYS[2] = user holds set key
-- ARGV[1] = user_id
-- ARGV[2] = seat label
-- ARGV[3] = ttl_seconds

local ttl = tonumber(ARGV[3])
local holder = redis.call("GET", KEYS[1])

if holder == ARGV[1] then
    redis.call("EXPIRE", KEYS[1], ttl)
    redis.call("EXPIRE", KEYS[2], ttl)
    return {1, "refreshed"}
end

if holder then
    return {0, holder}
end

redis.call("SETEX", KEYS[1], ttl, ARGV[1])
redis.call("SADD", KEYS[2], ARGV[2])
redis.call("EXPIRE", KEYS[2], ttl)
return {1, "claimed"}
`

// Lua script for releasing a single seat. Releasing a seat whose hold
// already expired is a success no-op; releasing someone else's hold is
// a conflict.
const luaSeatRelease = `
-- KEYS[1] = seat hold key
-- KEYS[2] = user holds set key
-- ARGV[1] = user_id
-- ARGV[2] = seat label

local holder = redis.call("GET", KEYS[1])

if not holder then
    redis.call("SREM", KEYS[2], ARGV[2])
    return {1, "expired"}
end

if holder ~= ARGV[1] then
    return {0, holder}
end

redis.call("DEL", KEYS[1])
redis.call("SREM", KEYS[2], ARGV[2])
return {1, "released"}
`

// ClaimSeat atomically claims one seat for a user. Returns
// ErrSeatConflict when another user holds the seat.
func (a *AtomicRedisOperations) ClaimSeat(ctx context.Context, eventID, userID string, seat SeatID, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{
		constants.BuildSeatHoldKey(eventID, seat.Row, seat.Number),
		constants.BuildUserHoldsKey(eventID, userID),
	}
	args := []interface{}{
		userID,
		seat.String(),
		strconv.Itoa(int(ttl.Seconds())),
	}

	success, _, err := a.runScript(ctx, luaSeatClaim, keys, args...)
	if err != nil {
		return fmt.Errorf("failed to execute seat claim: %w", err)
	}
	if !success {
		return ErrSeatConflict
	}

	return nil
}

// ReleaseSeat atomically releases one seat held by a user. Returns
// ErrSeatConflict when the seat is held by someone else.
func (a *AtomicRedisOperations) ReleaseSeat(ctx context.Context, eventID, userID string, seat SeatID) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{
		constants.BuildSeatHoldKey(eventID, seat.Row, seat.Number),
		constants.BuildUserHoldsKey(eventID, userID),
	}
	args := []interface{}{
		userID,
		seat.String(),
	}

	success, _, err := a.runScript(ctx, luaSeatRelease, keys, args...)
	if err != nil {
		return fmt.Errorf("failed to execute seat release: %w", err)
	}
	if !success {
		return ErrSeatConflict
	}

	return nil
}

// HoldersFor returns the current holder of each requested seat. Seats
// without an active hold are absent from the result.
func (a *AtomicRedisOperations) HoldersFor(ctx context.Context, eventID string, seatIDs []SeatID) (map[SeatID]string, error) {
	if a.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}
	if len(seatIDs) == 0 {
		return map[SeatID]string{}, nil
	}

	keys := make([]string, len(seatIDs))
	for i, seat := range seatIDs {
		keys[i] = constants.BuildSeatHoldKey(eventID, seat.Row, seat.Number)
	}

	values, err := a.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read seat holds: %w", err)
	}

	holders := make(map[SeatID]string)
	for i, value := range values {
		holder, ok := value.(string)
		if !ok || holder == "" {
			continue
		}
		holders[seatIDs[i]] = holder
	}

	return holders, nil
}

// UserHolds returns the seats a user currently holds for an event.
// Stale set entries whose hold keys already expired are filtered out.
func (a *AtomicRedisOperations) UserHolds(ctx context.Context, eventID, userID string) ([]SeatID, error) {
	if a.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	labels, err := a.redis.SMembers(ctx, constants.BuildUserHoldsKey(eventID, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read user holds: %w", err)
	}

	seats := make([]SeatID, 0, len(labels))
	for _, label := range labels {
		seat, err := ParseSeatID(label)
		if err != nil {
			continue
		}
		seats = append(seats, seat)
	}

	holders, err := a.HoldersFor(ctx, eventID, seats)
	if err != nil {
		return nil, err
	}

	held := make([]SeatID, 0, len(seats))
	for _, seat := range seats {
		if holders[seat] == userID {
			held = append(held, seat)
		}
	}

	return held, nil
}

// ClearUserHolds drops a user's holds for an event, typically after the
// seats were sold. Holds owned by other users are left untouched.
func (a *AtomicRedisOperations) ClearUserHolds(ctx context.Context, eventID, userID string, seatIDs []SeatID) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	labels := make([]interface{}, 0, len(seatIDs))
	for _, seat := range seatIDs {
		if err := a.ReleaseSeat(ctx, eventID, userID, seat); err != nil && !errors.Is(err, ErrSeatConflict) {
			return err
		}
		labels = append(labels, seat.String())
	}
	if len(labels) == 0 {
		return nil
	}

	// Only the requested labels leave the set; holds the user still has
	// on other seats stay visible to UserHolds.
	return a.redis.SRem(ctx, constants.BuildUserHoldsKey(eventID, userID), labels...).Err()
}

// runScript executes a Lua script with the EvalSha fast path and a
// plain Eval fallback when the script is not cached yet
func (a *AtomicRedisOperations) runScript(ctx context.Context, script string, keys []string, args ...interface{}) (bool, string, error) {
	result, err := a.redis.EvalSha(ctx, script, keys, args...).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, script, keys, args...).Result()
		if err != nil {
			return false, "", err
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return false, "", fmt.Errorf("unexpected result format from Lua script")
	}

	successFlag, ok := resultArray[0].(int64)
	if !ok {
		return false, "", fmt.Errorf("invalid success flag in Lua script result")
	}

	detail, _ := resultArray[1].(string)
	return successFlag == 1, detail, nil
}

// PreloadScripts loads the seat hold scripts into Redis so the EvalSha
// fast path hits on first use
func (a *AtomicRedisOperations) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaSeatClaim).Result(); err != nil {
		return fmt.Errorf("failed to load seat claim script: %w", err)
	}

	if _, err := a.redis.ScriptLoad(ctx, luaSeatRelease).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}

	return nil
}
