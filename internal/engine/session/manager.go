// Package session orchestrates conversations: it owns transcripts and
// per-session context, runs the turn pipeline, and forwards completed turns
// to the best-effort observers (turn log, snapshots, notifications).
package session

import (
	"context"
	"sync"
	"time"

	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/common/logger"
	"estate-assistant/internal/common/metrics"
	"estate-assistant/internal/common/observability"
	"estate-assistant/internal/engine/convctx"
	"estate-assistant/internal/engine/extract"
	"estate-assistant/internal/engine/intent"
	"estate-assistant/internal/engine/respond"
	"estate-assistant/internal/models"
	"estate-assistant/internal/store/turnlog"

	"github.com/google/uuid"
)

// Navigation targets for dispatched actions. Opaque to the engine; the
// presentation layer decides what they mean.
const (
	TargetConsultation = "/consultation"
	TargetServices     = "/services"
	TargetRequirements = "/requirements"
)

var dispatchTargets = map[models.ActionKind]string{
	models.ActionScheduleConsultation: TargetConsultation,
	models.ActionViewServices:         TargetServices,
	models.ActionSubmitRequirements:   TargetRequirements,
}

// SnapshotStore mirrors context to external storage after each turn.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, cc models.ConversationContext) error
	Delete(ctx context.Context, sessionID string) error
}

// Notifier alerts the team about consultation requests.
type Notifier interface {
	ConsultationRequested(ctx context.Context, sessionID string, cc models.ConversationContext)
}

// Config carries the manager's tunables.
type Config struct {
	Greeting   string
	ReplyDelay time.Duration // UI pacing pause before a reply is committed
}

// Deps carries the manager's collaborators. Recorder, Snapshots and Notifier
// may be nil; the corresponding side effect is then skipped.
type Deps struct {
	Synthesizer *respond.Synthesizer
	Recorder    turnlog.Recorder
	Snapshots   SnapshotStore
	Notifier    Notifier
	Obs         *observability.Observability
	Logger      logger.Logger
}

type liveSession struct {
	mu         sync.Mutex
	id         string
	context    models.ConversationContext
	transcript []models.Message
}

// Manager holds all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession

	cfg    Config
	synth  *respond.Synthesizer
	rec    turnlog.Recorder
	snaps  SnapshotStore
	notify Notifier
	obs    *observability.Observability
	logger logger.Logger

	// overridable in tests
	now   func() time.Time
	newID func() string
}

// NewManager creates a session manager.
func NewManager(cfg Config, deps Deps) *Manager {
	return &Manager{
		sessions: make(map[string]*liveSession),
		cfg:      cfg,
		synth:    deps.Synthesizer,
		rec:      deps.Recorder,
		snaps:    deps.Snapshots,
		notify:   deps.Notifier,
		obs:      deps.Obs,
		logger:   deps.Logger,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Start creates a session with empty context and seeds the transcript with
// the greeting. The greeting carries the general action set and is emitted
// before any user input.
func (m *Manager) Start() (string, models.Message) {
	greeting := models.Message{
		ID:        m.newID(),
		Role:      models.RoleAssistant,
		Text:      m.cfg.Greeting,
		CreatedAt: m.now().UTC(),
		Actions:   m.synth.GreetingActions(),
	}

	s := &liveSession{
		id:         m.newID(),
		transcript: []models.Message{greeting},
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	m.logger.Info("session started", map[string]interface{}{"sessionId": s.id})
	return s.id, greeting
}

// Submit processes one user turn and returns the committed assistant message.
//
// The pipeline runs on a staged copy of the session state. Nothing is
// committed until after the reply-delay pause, so a caller that abandons the
// turn mid-wait (via ctx) leaves the transcript and context exactly as they
// were; the pending reply is never delivered. Only after commit does the
// detached persistence goroutine start.
func (m *Manager) Submit(ctx context.Context, sessionID, text string, authenticated bool) (models.Message, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return models.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	started := m.now()

	entities := extract.Extract(text)
	classified := intent.Classify(text)

	staged := s.context.Clone()
	convctx.Apply(&staged, entities)

	reply := m.synth.Synthesize(classified, entities, staged, authenticated)

	if m.cfg.ReplyDelay > 0 {
		timer := time.NewTimer(m.cfg.ReplyDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return models.Message{}, errors.NewTurnAbandonedError(sessionID)
		case <-timer.C:
		}
	}

	userMsg := models.Message{
		ID:        m.newID(),
		Role:      models.RoleUser,
		Text:      text,
		CreatedAt: started.UTC(),
	}
	assistantMsg := models.Message{
		ID:        m.newID(),
		Role:      models.RoleAssistant,
		Text:      reply.Text,
		CreatedAt: m.now().UTC(),
		Actions:   reply.Actions,
	}

	s.context = staged
	s.transcript = append(s.transcript, userMsg, assistantMsg)

	elapsed := m.now().Sub(started)
	metrics.TurnsProcessed.WithLabelValues(string(classified)).Inc()
	metrics.TurnDuration.WithLabelValues(string(classified)).Observe(elapsed.Seconds())
	if m.obs != nil {
		m.obs.RecordTurn(ctx, string(classified))
		m.obs.RecordTurnDuration(ctx, string(classified), float64(elapsed.Milliseconds()))
	}

	turn := &models.TurnRecord{
		ID:        m.newID(),
		SessionID: sessionID,
		UserText:  text,
		ReplyText: reply.Text,
		Intent:    classified,
		CreatedAt: assistantMsg.CreatedAt,
	}
	go m.persistTurn(turn, staged.Clone())

	return assistantMsg, nil
}

// persistTurn runs detached from the reply path. The live session holds no
// reference to the context clone passed in.
func (m *Manager) persistTurn(turn *models.TurnRecord, cc models.ConversationContext) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if m.rec != nil {
		if err := m.rec.Record(ctx, turn); err != nil {
			m.logger.WithError(err).Warn("turn record failed", map[string]interface{}{
				"sessionId": turn.SessionID,
			})
		}
	}
	if m.snaps != nil {
		if err := m.snaps.Save(ctx, turn.SessionID, cc); err != nil {
			m.logger.WithError(err).Warn("context snapshot failed", map[string]interface{}{
				"sessionId": turn.SessionID,
			})
		}
	}
}

// Transcript returns a copy of the session's messages in order.
func (m *Manager) Transcript(sessionID string) ([]models.Message, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.transcript...), nil
}

// Context returns a copy of the session's accumulated context.
func (m *Manager) Context(sessionID string) (models.ConversationContext, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return models.ConversationContext{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context.Clone(), nil
}

// Dispatch resolves a selected action to its navigation target. Engine state
// does not change; scheduling a consultation additionally fires a
// best-effort team notification, detached from the caller like persistTurn.
func (m *Manager) Dispatch(ctx context.Context, sessionID string, kind models.ActionKind) (string, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return "", err
	}

	target, ok := dispatchTargets[kind]
	if !ok {
		return "", errors.NewUnknownActionError(string(kind))
	}

	metrics.ActionDispatches.WithLabelValues(string(kind)).Inc()

	if kind == models.ActionScheduleConsultation && m.notify != nil {
		s.mu.Lock()
		cc := s.context.Clone()
		s.mu.Unlock()
		go m.notifyConsultation(sessionID, cc)
	}

	return target, nil
}

func (m *Manager) notifyConsultation(sessionID string, cc models.ConversationContext) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.notify.ConsultationRequested(ctx, sessionID, cc)
}

// MarkLeadCaptured flags the session as having left contact details, which
// stops the lead-capture suffix. Nothing in the turn pipeline sets this; it
// exists for the host product to call when its lead form completes.
func (m *Manager) MarkLeadCaptured(sessionID string) error {
	s, err := m.lookup(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.context.LeadCaptured = true
	s.mu.Unlock()
	return nil
}

// End discards the session. The externally stored snapshot is deleted best
// effort.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	_, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return errors.NewSessionNotFoundError(sessionID)
	}

	metrics.ActiveSessions.Dec()
	if m.snaps != nil {
		if err := m.snaps.Delete(ctx, sessionID); err != nil {
			m.logger.WithError(err).Warn("snapshot delete failed", map[string]interface{}{
				"sessionId": sessionID,
			})
		}
	}
	m.logger.Info("session ended", map[string]interface{}{"sessionId": sessionID})
	return nil
}

func (m *Manager) lookup(sessionID string) (*liveSession, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NewSessionNotFoundError(sessionID)
	}
	return s, nil
}
