package events

import (
	"context"
	"fmt"
	"time"
)

// StartedMessage is the terminal countdown value
const StartedMessage = "Event has started"

// Countdown derives a live time-to-event signal for one event. It emits a
// fresh human-readable value once per tick until the target passes, then
// emits StartedMessage and closes the channel. Cancelling the context stops
// the ticker; the channel is always closed on the way out so consumers never
// strand a goroutine.
type Countdown struct {
	target   time.Time
	interval time.Duration
	now      func() time.Time
}

// NewCountdown creates a countdown toward target with a 1-second tick
func NewCountdown(target time.Time) *Countdown {
	return &Countdown{
		target:   target,
		interval: time.Second,
		now:      time.Now,
	}
}

// NewCountdownWithInterval creates a countdown with a custom tick interval
func NewCountdownWithInterval(target time.Time, interval time.Duration) *Countdown {
	return &Countdown{
		target:   target,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins ticking. The first value is emitted immediately.
func (c *Countdown) Start(ctx context.Context) <-chan string {
	out := make(chan string, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			remaining := c.target.Sub(c.now())
			if remaining < 0 {
				select {
				case out <- StartedMessage:
				case <-ctx.Done():
				}
				return
			}

			select {
			case out <- FormatRemaining(remaining):
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// FormatRemaining renders a duration as "{d}d {h}h {m}m {s}s"
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}
