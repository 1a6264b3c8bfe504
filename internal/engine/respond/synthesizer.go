// Package respond turns (intent, entities, context) into the assistant's
// reply text and suggested actions.
package respond

import (
	"strings"

	"estate-assistant/internal/models"
)

// DefaultLeadSuffix nudges anonymous visitors toward leaving contact details.
// It is appended to every reply while the session is unauthenticated and no
// lead has been captured.
const DefaultLeadSuffix = "You can also create a free account or schedule a consultation so we can tailor recommendations for you."

// Reply is a synthesized assistant turn.
type Reply struct {
	Text    string
	Actions []models.Action
}

// Synthesizer maps classified turns onto reply templates.
type Synthesizer struct {
	registry   *Registry
	leadSuffix string
}

// NewSynthesizer builds a synthesizer over a template registry. A nil registry
// means the built-in defaults.
func NewSynthesizer(registry *Registry) *Synthesizer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Synthesizer{registry: registry, leadSuffix: DefaultLeadSuffix}
}

// WithLeadSuffix overrides the lead-capture suffix text.
func (s *Synthesizer) WithLeadSuffix(suffix string) *Synthesizer {
	s.leadSuffix = suffix
	return s
}

// Synthesize produces the reply for one turn. Entities from the current turn
// take precedence; values already accumulated in the context fill the gaps,
// so "show flats there" still interpolates the location from two turns ago.
//
// While the caller is unauthenticated and no lead has been captured the
// lead-capture suffix is appended to every reply. The upstream product never
// sets LeadCaptured from inside the engine, so in practice the suffix repeats
// each turn; that repetition is preserved deliberately.
func (s *Synthesizer) Synthesize(intent models.Intent, entities models.Entities, ctx models.ConversationContext, authenticated bool) Reply {
	tpl := s.registry.Template(intent)

	parts := []string{tpl.Text}

	if tpl.AmountText != "" {
		if amount, ok := resolveAmount(entities, ctx); ok {
			parts = append(parts, strings.ReplaceAll(tpl.AmountText, placeholderAmount, FormatAmount(amount)))
		}
	}
	if tpl.TimelineText != "" {
		if days, ok := resolveTimeline(entities, ctx); ok {
			parts = append(parts, strings.ReplaceAll(tpl.TimelineText, placeholderDays, FormatDays(days)))
		}
	}
	if tpl.LocationText != "" {
		if location, ok := resolveLocation(entities, ctx); ok {
			parts = append(parts, strings.ReplaceAll(tpl.LocationText, placeholderLocation, location))
		}
	}

	if !authenticated && !ctx.LeadCaptured {
		parts = append(parts, s.leadSuffix)
	}

	actions := make([]models.Action, 0, len(tpl.Actions))
	for _, a := range tpl.Actions {
		actions = append(actions, models.Action{Kind: a.Kind, Label: a.Label})
	}

	return Reply{Text: strings.Join(parts, " "), Actions: actions}
}

// GreetingActions returns the action set seeded onto the session's opening
// assistant message.
func (s *Synthesizer) GreetingActions() []models.Action {
	tpl := s.registry.Template(models.IntentGeneral)
	actions := make([]models.Action, 0, len(tpl.Actions))
	for _, a := range tpl.Actions {
		actions = append(actions, models.Action{Kind: a.Kind, Label: a.Label})
	}
	return actions
}

func resolveAmount(e models.Entities, ctx models.ConversationContext) (int64, bool) {
	if e.Amount != nil {
		return e.Amount.ValueInBaseUnits, true
	}
	if ctx.Budget != nil {
		return ctx.Budget.ValueInBaseUnits, true
	}
	return 0, false
}

func resolveTimeline(e models.Entities, ctx models.ConversationContext) (int, bool) {
	if e.Duration != nil {
		return e.Duration.ValueInDays, true
	}
	if ctx.Timeline != nil {
		return ctx.Timeline.ValueInDays, true
	}
	return 0, false
}

func resolveLocation(e models.Entities, ctx models.ConversationContext) (string, bool) {
	if e.Location != nil {
		return e.Location.Text, true
	}
	if ctx.Location != "" {
		return ctx.Location, true
	}
	return "", false
}
