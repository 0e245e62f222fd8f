package notifications

import (
	"encoding/json"
	"time"
)

// SaleCommittedMessage is the wire payload published when a sale
// commits. Consumers send the purchase confirmation from it.
type SaleCommittedMessage struct {
	SaleID          string          `json:"sale_id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	EventID         string          `json:"event_id"`
	UserID          string          `json:"user_id"`
	TotalAmount     int64           `json:"total_amount"`
	Currency        string          `json:"currency"`
	Seats           []CommittedSeat `json:"seats"`
	CommittedAt     time.Time       `json:"committed_at"`
}

type CommittedSeat struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
	Price  string `json:"price"`
}

func (m *SaleCommittedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SaleCommittedFromJSON(data []byte) (*SaleCommittedMessage, error) {
	var message SaleCommittedMessage
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// GetPartitionKey routes all messages of one user to one partition so
// a user's confirmations stay ordered
func (m *SaleCommittedMessage) GetPartitionKey() string {
	return m.UserID
}
