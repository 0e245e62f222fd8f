package seats

// Status is the lifecycle state of a seat
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusSold      Status = "SOLD"
)

// CanTransitionTo reports whether a seat may move from one status to
// another. SOLD is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusAvailable:
		return target == StatusReserved
	case StatusReserved:
		return target == StatusAvailable || target == StatusSold
	case StatusSold:
		return false
	default:
		return false
	}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}
