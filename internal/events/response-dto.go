package events

type CountdownResponse struct {
	Remaining string `json:"remaining"`
	Started   bool   `json:"started"`
}
