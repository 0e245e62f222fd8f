package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0d 0h 0m 0s"},
		{45 * time.Second, "0d 0h 0m 45s"},
		{90 * time.Minute, "0d 1h 30m 0s"},
		{26*time.Hour + 3*time.Minute + 5*time.Second, "1d 2h 3m 5s"},
		{-time.Minute, "0d 0h 0m 0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRemaining(tt.d), "duration %s", tt.d)
	}
}

func TestCountdownPastTargetEmitsTerminalValue(t *testing.T) {
	c := NewCountdown(time.Now().Add(-time.Minute))

	values := c.Start(context.Background())

	value, ok := <-values
	require.True(t, ok)
	assert.Equal(t, StartedMessage, value)

	_, ok = <-values
	assert.False(t, ok, "channel must close after the terminal value")
}

func TestCountdownTicksDownToStarted(t *testing.T) {
	c := NewCountdownWithInterval(time.Now().Add(30*time.Millisecond), 10*time.Millisecond)

	values := c.Start(context.Background())

	first, ok := <-values
	require.True(t, ok)
	assert.NotEqual(t, StartedMessage, first)

	var last string
	for value := range values {
		last = value
	}
	assert.Equal(t, StartedMessage, last)
}

func TestCountdownStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCountdown(time.Now().Add(time.Hour))

	values := c.Start(ctx)
	<-values
	cancel()

	select {
	case _, ok := <-values:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("countdown did not stop after cancel")
	}
}

func TestEventStartsAtAndHasStarted(t *testing.T) {
	event := &Event{Date: "2026-01-02", Time: "20:30"}

	startsAt, err := event.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, 2026, startsAt.Year())
	assert.Equal(t, 20, startsAt.Hour())

	assert.False(t, event.HasStarted(startsAt.Add(-time.Minute)))
	assert.True(t, event.HasStarted(startsAt.Add(time.Minute)))
}
