package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOrder(t *testing.T) {
	assert.True(t, StateIdle.CanTransitionTo(StateAmountComputed))
	assert.True(t, StateAmountComputed.CanTransitionTo(StateIntentCreated))
	assert.True(t, StateIntentCreated.CanTransitionTo(StatePaymentConfirmed))
	assert.True(t, StatePaymentConfirmed.CanTransitionTo(StateSaleCommitted))

	assert.False(t, StateIdle.CanTransitionTo(StateIntentCreated))
	assert.False(t, StateAmountComputed.CanTransitionTo(StateSaleCommitted))
	assert.False(t, StateSaleCommitted.CanTransitionTo(StateAmountComputed))
}

func TestAnyActiveStateCanFail(t *testing.T) {
	for _, state := range []State{StateIdle, StateAmountComputed, StateIntentCreated, StatePaymentConfirmed} {
		assert.True(t, state.CanTransitionTo(StateFailed), "state %s", state)
	}
	assert.False(t, StateSaleCommitted.CanTransitionTo(StateFailed))
	assert.False(t, StateFailed.CanTransitionTo(StateFailed))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StateSaleCommitted.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StateIntentCreated.IsTerminal())
}

func TestMachineRejectsSkippedPhase(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.advance(StateAmountComputed))
	assert.Error(t, m.advance(StatePaymentConfirmed))
	assert.Equal(t, StateAmountComputed, m.state)
}
