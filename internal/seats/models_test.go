package seats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatIDLabelRoundTrip(t *testing.T) {
	id := SeatID{Row: "A", Number: 12}
	assert.Equal(t, "A-12", id.String())

	parsed, err := ParseSeatID("A-12")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	// Row names may themselves contain a dash
	parsed, err = ParseSeatID("AA-1-7")
	require.NoError(t, err)
	assert.Equal(t, SeatID{Row: "AA-1", Number: 7}, parsed)
}

func TestParseSeatIDRejectsMalformedLabels(t *testing.T) {
	for _, label := range []string{"", "A", "A-", "-1", "A-x"} {
		_, err := ParseSeatID(label)
		assert.Error(t, err, "label %q", label)
	}
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusAvailable.CanTransitionTo(StatusReserved))
	assert.True(t, StatusReserved.CanTransitionTo(StatusAvailable))
	assert.True(t, StatusReserved.CanTransitionTo(StatusSold))

	assert.False(t, StatusAvailable.CanTransitionTo(StatusSold))
	assert.False(t, StatusSold.CanTransitionTo(StatusAvailable))
	assert.False(t, StatusSold.CanTransitionTo(StatusReserved))
}

func buildSeatMap() SeatMap {
	return SeatMap{
		"A": {
			1: {Status: StatusAvailable, Price: decimal.NewFromFloat(25.00)},
			2: {Status: StatusSold, Price: decimal.NewFromFloat(40.50)},
		},
		"B": {
			1: {Status: StatusReserved, Price: decimal.NewFromFloat(18.00), Mine: true},
		},
	}
}

func TestSeatMapOrdering(t *testing.T) {
	m := buildSeatMap()
	assert.Equal(t, []string{"A", "B"}, m.Rows())
	assert.Equal(t, []int{1, 2}, m.Numbers("A"))
}

func TestSeatMapApplyHonorsTerminalSold(t *testing.T) {
	m := buildSeatMap()

	ok := m.Apply(SeatID{Row: "A", Number: 1}, SeatView{Status: StatusReserved, Price: decimal.NewFromFloat(25.00), Mine: true})
	assert.True(t, ok)
	view, _ := m.Get(SeatID{Row: "A", Number: 1})
	assert.Equal(t, StatusReserved, view.Status)

	// A sold seat never changes state again
	ok = m.Apply(SeatID{Row: "A", Number: 2}, SeatView{Status: StatusAvailable})
	assert.False(t, ok)
	view, _ = m.Get(SeatID{Row: "A", Number: 2})
	assert.Equal(t, StatusSold, view.Status)

	ok = m.Apply(SeatID{Row: "Z", Number: 9}, SeatView{Status: StatusAvailable})
	assert.False(t, ok)
}

func TestSeatMapCloneIsIndependent(t *testing.T) {
	m := buildSeatMap()
	clone := m.Clone()

	clone.Apply(SeatID{Row: "A", Number: 1}, SeatView{Status: StatusReserved})

	view, _ := m.Get(SeatID{Row: "A", Number: 1})
	assert.Equal(t, StatusAvailable, view.Status)
}
