package reservation

import (
	"testing"

	"tessera/internal/seats"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSelectionKeepsPickOrder(t *testing.T) {
	s := NewSelection()
	s.Add(seats.SeatID{Row: "B", Number: 2}, decimal.NewFromFloat(40.50))
	s.Add(seats.SeatID{Row: "A", Number: 1}, decimal.NewFromFloat(25.00))
	s.Add(seats.SeatID{Row: "B", Number: 2}, decimal.NewFromFloat(40.50))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []seats.SeatID{{Row: "B", Number: 2}, {Row: "A", Number: 1}}, s.Seats())

	s.Remove(seats.SeatID{Row: "B", Number: 2})
	assert.Equal(t, []seats.SeatID{{Row: "A", Number: 1}}, s.Seats())
	assert.False(t, s.Contains(seats.SeatID{Row: "B", Number: 2}))

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.Seats())
}

func TestSelectionTotalMinorUnits(t *testing.T) {
	s := NewSelection()
	assert.Zero(t, s.TotalMinorUnits())

	s.Add(seats.SeatID{Row: "A", Number: 1}, decimal.NewFromFloat(25.00))
	s.Add(seats.SeatID{Row: "A", Number: 2}, decimal.NewFromFloat(40.50))
	assert.Equal(t, int64(6550), s.TotalMinorUnits())

	// Decimal arithmetic keeps cent precision exact
	s.Add(seats.SeatID{Row: "B", Number: 1}, decimal.NewFromFloat(0.10))
	s.Add(seats.SeatID{Row: "B", Number: 2}, decimal.NewFromFloat(0.20))
	assert.Equal(t, int64(6580), s.TotalMinorUnits())
}
