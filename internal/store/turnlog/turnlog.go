// Package turnlog persists completed conversation turns to durable sinks.
// Recording is best effort: the conversation never waits on, or fails
// because of, a sink.
package turnlog

import (
	"context"

	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/common/logger"
	"estate-assistant/internal/common/metrics"
	"estate-assistant/internal/models"
)

// Recorder writes one completed turn to a sink.
type Recorder interface {
	Record(ctx context.Context, turn *models.TurnRecord) error
}

// Multi fans a turn out to every configured sink. Sink failures are logged
// and counted but never propagated to the caller.
type Multi struct {
	sinks  []namedSink
	logger logger.Logger
}

type namedSink struct {
	name     string
	recorder Recorder
}

// NewMulti creates a fan-out recorder over zero or more sinks.
func NewMulti(log logger.Logger) *Multi {
	return &Multi{logger: log}
}

// Add registers a sink under a name used in logs and failure metrics.
func (m *Multi) Add(name string, r Recorder) {
	m.sinks = append(m.sinks, namedSink{name: name, recorder: r})
}

// Record writes the turn to every sink. It always returns nil.
func (m *Multi) Record(ctx context.Context, turn *models.TurnRecord) error {
	for _, s := range m.sinks {
		if err := s.recorder.Record(ctx, turn); err != nil {
			metrics.TurnRecordFailures.WithLabelValues(s.name).Inc()
			m.logger.WithError(errors.NewTurnRecordFailedError(s.name, err)).Warn(
				"failed to record turn", map[string]interface{}{
					"sink":       s.name,
					"turn_id":    turn.ID,
					"session_id": turn.SessionID,
				})
		}
	}
	return nil
}
