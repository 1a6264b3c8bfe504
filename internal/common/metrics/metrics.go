package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_processed_total",
			Help: "Total number of conversation turns processed",
		},
		[]string{"intent"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_turn_duration_seconds",
			Help: "Duration of turn processing in seconds",
		},
		[]string{"intent"},
	)

	TurnRecordFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turn_record_failures_total",
			Help: "Total number of best-effort turn record failures by sink",
		},
		[]string{"sink"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_active_sessions",
			Help: "Number of live conversation sessions",
		},
	)

	ActionDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_action_dispatches_total",
			Help: "Total number of suggested-action dispatches by kind",
		},
		[]string{"kind"},
	)
)
