package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	seatToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_toggle_operations_total",
			Help: "Total seat claim/release operations",
		},
		[]string{"operation", "result"},
	)

	checkoutOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_outcomes_total",
			Help: "Terminal checkout states",
		},
		[]string{"state", "reason"},
	)

	checkoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "Duration of full checkout runs",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	heldSeats = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "held_seats_total",
			Help: "Seats currently under an active hold",
		},
	)
)

// RecordSeatToggle records the outcome of one claim or release request
func RecordSeatToggle(operation, result string) {
	seatToggles.WithLabelValues(operation, result).Inc()
}

// RecordCheckoutOutcome records a terminal checkout state; reason is empty
// for successful commits
func RecordCheckoutOutcome(state, reason string) {
	checkoutOutcomes.WithLabelValues(state, reason).Inc()
}

// ObserveCheckoutDuration records the wall time of one checkout run
func ObserveCheckoutDuration(seconds float64) {
	checkoutDuration.Observe(seconds)
}

// SetHeldSeats updates the live hold gauge
func SetHeldSeats(n float64) {
	heldSeats.Set(n)
}
