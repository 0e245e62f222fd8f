package seats

import (
	"context"
	"errors"
	"testing"
	"time"

	"tessera/internal/shared/constants"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEventID = "2f3a44c8-6f30-4d32-9a3b-6f6cb6a7c111"

func claimKeys(userID string, seat SeatID) []string {
	return []string{
		constants.BuildSeatHoldKey(testEventID, seat.Row, seat.Number),
		constants.BuildUserHoldsKey(testEventID, userID),
	}
}

func TestClaimSeatSuccess(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	seat := SeatID{Row: "A", Number: 1}
	mock.ExpectEvalSha(luaSeatClaim, claimKeys("alice", seat), "alice", "A-1", "600").
		SetVal([]interface{}{int64(1), "claimed"})

	err := ops.ClaimSeat(context.Background(), testEventID, "alice", seat, 10*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimSeatConflict(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	seat := SeatID{Row: "A", Number: 1}
	mock.ExpectEvalSha(luaSeatClaim, claimKeys("bob", seat), "bob", "A-1", "600").
		SetVal([]interface{}{int64(0), "alice"})

	err := ops.ClaimSeat(context.Background(), testEventID, "bob", seat, 10*time.Minute)
	assert.ErrorIs(t, err, ErrSeatConflict)
}

func TestClaimSeatFallsBackToEval(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	seat := SeatID{Row: "B", Number: 3}
	keys := claimKeys("alice", seat)
	mock.ExpectEvalSha(luaSeatClaim, keys, "alice", "B-3", "600").
		SetErr(errors.New("NOSCRIPT No matching script"))
	mock.ExpectEval(luaSeatClaim, keys, "alice", "B-3", "600").
		SetVal([]interface{}{int64(1), "claimed"})

	err := ops.ClaimSeat(context.Background(), testEventID, "alice", seat, 10*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSeatExpiredHoldIsNoOp(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	seat := SeatID{Row: "A", Number: 1}
	mock.ExpectEvalSha(luaSeatRelease, claimKeys("alice", seat), "alice", "A-1").
		SetVal([]interface{}{int64(1), "expired"})

	err := ops.ReleaseSeat(context.Background(), testEventID, "alice", seat)
	assert.NoError(t, err)
}

func TestReleaseSeatHeldByAnother(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	seat := SeatID{Row: "A", Number: 1}
	mock.ExpectEvalSha(luaSeatRelease, claimKeys("bob", seat), "bob", "A-1").
		SetVal([]interface{}{int64(0), "alice"})

	err := ops.ReleaseSeat(context.Background(), testEventID, "bob", seat)
	assert.ErrorIs(t, err, ErrSeatConflict)
}

func TestHoldersForSkipsUnheldSeats(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	seatIDs := []SeatID{{Row: "A", Number: 1}, {Row: "A", Number: 2}}
	mock.ExpectMGet(
		constants.BuildSeatHoldKey(testEventID, "A", 1),
		constants.BuildSeatHoldKey(testEventID, "A", 2),
	).SetVal([]interface{}{"alice", nil})

	holders, err := ops.HoldersFor(context.Background(), testEventID, seatIDs)
	require.NoError(t, err)
	assert.Equal(t, map[SeatID]string{{Row: "A", Number: 1}: "alice"}, holders)
}

func TestClearUserHoldsRemovesOnlyReleasedLabels(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	// The set must shrink by exactly the released labels, never be
	// dropped wholesale, so other live holds stay visible to UserHolds.
	first := SeatID{Row: "A", Number: 1}
	second := SeatID{Row: "A", Number: 2}
	mock.ExpectEvalSha(luaSeatRelease, claimKeys("alice", first), "alice", "A-1").
		SetVal([]interface{}{int64(1), "released"})
	mock.ExpectEvalSha(luaSeatRelease, claimKeys("alice", second), "alice", "A-2").
		SetVal([]interface{}{int64(1), "released"})
	mock.ExpectSRem(constants.BuildUserHoldsKey(testEventID, "alice"), "A-1", "A-2").
		SetVal(2)

	err := ops.ClearUserHolds(context.Background(), testEventID, "alice", []SeatID{first, second})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearUserHoldsWithNoSeatsIsNoOp(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	err := ops.ClearUserHolds(context.Background(), testEventID, "alice", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserHoldsFiltersStaleEntries(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ops := NewAtomicRedisOperations(client)

	mock.ExpectSMembers(constants.BuildUserHoldsKey(testEventID, "alice")).
		SetVal([]string{"A-1", "A-2"})
	mock.ExpectMGet(
		constants.BuildSeatHoldKey(testEventID, "A", 1),
		constants.BuildSeatHoldKey(testEventID, "A", 2),
	).SetVal([]interface{}{"alice", nil})

	held, err := ops.UserHolds(context.Background(), testEventID, "alice")
	require.NoError(t, err)
	assert.Equal(t, []SeatID{{Row: "A", Number: 1}}, held)
}
