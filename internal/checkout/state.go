package checkout

import "fmt"

// State is the phase a checkout run is in
type State string

const (
	StateIdle             State = "IDLE"
	StateAmountComputed   State = "AMOUNT_COMPUTED"
	StateIntentCreated    State = "INTENT_CREATED"
	StatePaymentConfirmed State = "PAYMENT_CONFIRMED"
	StateSaleCommitted    State = "SALE_COMMITTED"
	StateFailed           State = "FAILED"
)

// CanTransitionTo reports whether a checkout may advance between two
// states. Any non-terminal state may fail; SALE_COMMITTED and FAILED
// are terminal.
func (s State) CanTransitionTo(target State) bool {
	if target == StateFailed {
		return s != StateSaleCommitted && s != StateFailed
	}

	switch s {
	case StateIdle:
		return target == StateAmountComputed
	case StateAmountComputed:
		return target == StateIntentCreated
	case StateIntentCreated:
		return target == StatePaymentConfirmed
	case StatePaymentConfirmed:
		return target == StateSaleCommitted
	default:
		return false
	}
}

// IsTerminal reports whether the checkout can advance no further
func (s State) IsTerminal() bool {
	return s == StateSaleCommitted || s == StateFailed
}

// machine enforces the checkout state order
type machine struct {
	state State
}

func newMachine() *machine {
	return &machine{state: StateIdle}
}

func (m *machine) advance(target State) error {
	if !m.state.CanTransitionTo(target) {
		return fmt.Errorf("invalid checkout transition %s -> %s", m.state, target)
	}
	m.state = target
	return nil
}
