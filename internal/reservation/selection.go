package reservation

import (
	"tessera/internal/seats"

	"github.com/shopspring/decimal"
)

// Selection is the set of seats a session currently holds, in the
// order they were picked
type Selection struct {
	prices map[seats.SeatID]decimal.Decimal
	order  []seats.SeatID
}

func NewSelection() *Selection {
	return &Selection{
		prices: make(map[seats.SeatID]decimal.Decimal),
	}
}

func (s *Selection) Add(id seats.SeatID, price decimal.Decimal) {
	if _, ok := s.prices[id]; ok {
		s.prices[id] = price
		return
	}
	s.prices[id] = price
	s.order = append(s.order, id)
}

func (s *Selection) Remove(id seats.SeatID) {
	if _, ok := s.prices[id]; !ok {
		return
	}
	delete(s.prices, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Selection) Contains(id seats.SeatID) bool {
	_, ok := s.prices[id]
	return ok
}

func (s *Selection) IsEmpty() bool {
	return len(s.prices) == 0
}

func (s *Selection) Len() int {
	return len(s.prices)
}

// Seats returns the selected seats in pick order
func (s *Selection) Seats() []seats.SeatID {
	out := make([]seats.SeatID, len(s.order))
	copy(out, s.order)
	return out
}

// Total sums the selection's prices
func (s *Selection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, price := range s.prices {
		total = total.Add(price)
	}
	return total
}

// TotalMinorUnits is the selection total in the currency's minor unit,
// the amount a payment intent is created for
func (s *Selection) TotalMinorUnits() int64 {
	return s.Total().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (s *Selection) Clear() {
	s.prices = make(map[seats.SeatID]decimal.Decimal)
	s.order = nil
}
