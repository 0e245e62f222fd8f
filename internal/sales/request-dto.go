package sales

// CompletePurchaseRequest commits held seats against a confirmed
// payment intent
type CompletePurchaseRequest struct {
	IntentID string `json:"intent_id" binding:"required"`
}
