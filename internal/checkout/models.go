package checkout

import (
	"errors"

	"tessera/internal/seats"
)

// FailureReason explains a FAILED checkout
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonEmptySelection     FailureReason = "EMPTY_SELECTION"
	ReasonAuthExpired        FailureReason = "AUTH_EXPIRED"
	ReasonGatewayUnavailable FailureReason = "GATEWAY_UNAVAILABLE"
	ReasonCardDeclined       FailureReason = "CARD_DECLINED"
	ReasonProcessorError     FailureReason = "PROCESSOR_ERROR"
	ReasonPostChargeConflict FailureReason = "POST_CHARGE_CONFLICT"
)

// Gateway and ledger sentinels the orchestrator maps to failure
// reasons
var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrCardDeclined       = errors.New("card declined")
	ErrProcessorError     = errors.New("payment processor error")
	ErrCommitConflict     = errors.New("sale commit conflict")
)

// CardDetails is the card input a checkout charges
type CardDetails struct {
	Number   string `json:"number" binding:"required,min=12,max=19"`
	ExpMonth int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear  int    `json:"exp_year" binding:"required,min=2024"`
	CVC      string `json:"cvc" binding:"required,min=3,max=4"`
}

// Intent is the gateway-side payment intent a checkout charges against
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Result is the outcome of one checkout run
type Result struct {
	State    State          `json:"state"`
	Reason   FailureReason  `json:"reason,omitempty"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency,omitempty"`
	IntentID string         `json:"intent_id,omitempty"`
	SaleID   string         `json:"sale_id,omitempty"`
	Seats    []seats.SeatID `json:"seats,omitempty"`

	// RetryCommit is set when the payment went through but the sale
	// commit could not be reached. The charge exists; only the commit
	// may be retried.
	RetryCommit bool `json:"retry_commit,omitempty"`
}

func (r *Result) Succeeded() bool {
	return r.State == StateSaleCommitted
}
