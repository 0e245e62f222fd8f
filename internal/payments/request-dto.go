package payments

// ConfirmIntentRequest charges an existing intent with card details
type ConfirmIntentRequest struct {
	IntentID     string `json:"intent_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
	CardNumber   string `json:"card_number" binding:"required,min=12,max=19"`
	ExpMonth     int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear      int    `json:"exp_year" binding:"required"`
	CVC          string `json:"cvc" binding:"required,min=3,max=4"`
}

// CreateIntentResponse returns the intent the client will confirm
type CreateIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	SeatCount    int    `json:"seat_count"`
}
