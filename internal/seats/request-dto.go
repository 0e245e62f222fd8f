package seats

import "github.com/shopspring/decimal"

// SeatActionRequest identifies the seat a reserve or release targets
type SeatActionRequest struct {
	Row    string `json:"row" binding:"required"`
	Number int    `json:"number" binding:"required,min=1"`
}

// ProvisionSeatsRequest creates an event's seat layout
type ProvisionSeatsRequest struct {
	Rows        []ProvisionRow `json:"rows" binding:"required,min=1,dive"`
	SeatsPerRow int            `json:"seats_per_row" binding:"required,min=1,max=100"`
}

type ProvisionRow struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
}
