package seats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seat is the persistent record of one seat of one event. Only the
// AVAILABLE and SOLD states are stored here; RESERVED is materialized
// from the Redis hold keys and never written to Postgres.
type Seat struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID    uuid.UUID       `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_row_seat" json:"event_id"`
	RowName    string          `gorm:"not null;uniqueIndex:idx_event_row_seat" json:"row_name"`
	SeatNumber int             `gorm:"not null;uniqueIndex:idx_event_row_seat" json:"seat_number"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Status     Status          `gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'SOLD');default:'AVAILABLE'" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsSold() bool {
	return s.Status == StatusSold
}

// SeatID identifies one seat within an event's seat map
type SeatID struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
}

func (id SeatID) String() string {
	return fmt.Sprintf("%s-%d", id.Row, id.Number)
}

// ParseSeatID parses a "ROW-NUMBER" label back into a SeatID
func ParseSeatID(label string) (SeatID, error) {
	idx := strings.LastIndex(label, "-")
	if idx <= 0 || idx == len(label)-1 {
		return SeatID{}, fmt.Errorf("invalid seat label: %q", label)
	}

	number, err := strconv.Atoi(label[idx+1:])
	if err != nil {
		return SeatID{}, fmt.Errorf("invalid seat label: %q", label)
	}

	return SeatID{Row: label[:idx], Number: number}, nil
}

// SeatView is the client-facing state of one seat
type SeatView struct {
	Status Status          `json:"status"`
	Price  decimal.Decimal `json:"price"`
	Mine   bool            `json:"mine,omitempty"`
}

// SeatMap is the full seat layout of an event, keyed by row name and
// seat number. Serializes the way clients render it: rows of seats.
type SeatMap map[string]map[int]SeatView

// Rows returns the row names in display order
func (m SeatMap) Rows() []string {
	rows := make([]string, 0, len(m))
	for row := range m {
		rows = append(rows, row)
	}
	sort.Strings(rows)
	return rows
}

// Numbers returns the seat numbers of a row in display order
func (m SeatMap) Numbers(row string) []int {
	numbers := make([]int, 0, len(m[row]))
	for number := range m[row] {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers
}

// Get looks up one seat's view
func (m SeatMap) Get(id SeatID) (SeatView, bool) {
	view, ok := m[id.Row][id.Number]
	return view, ok
}

// Clone returns a deep copy of the seat map
func (m SeatMap) Clone() SeatMap {
	clone := make(SeatMap, len(m))
	for row, numbers := range m {
		clone[row] = make(map[int]SeatView, len(numbers))
		for number, view := range numbers {
			clone[row][number] = view
		}
	}
	return clone
}

// Apply overwrites one seat's view. A seat already SOLD never leaves
// that state regardless of the incoming view.
func (m SeatMap) Apply(id SeatID, view SeatView) bool {
	current, ok := m[id.Row][id.Number]
	if !ok {
		return false
	}
	if current.Status == StatusSold {
		return false
	}
	m[id.Row][id.Number] = view
	return true
}
