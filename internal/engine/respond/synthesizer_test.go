package respond

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-assistant/internal/models"
)

func actionKinds(actions []models.Action) []models.ActionKind {
	kinds := make([]models.ActionKind, 0, len(actions))
	for _, a := range actions {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

func TestSynthesize_ActionSets(t *testing.T) {
	tests := []struct {
		intent models.Intent
		kinds  []models.ActionKind
		labels []string
	}{
		{
			intent: models.IntentBudgetInquiry,
			kinds:  []models.ActionKind{models.ActionScheduleConsultation, models.ActionViewServices},
			labels: []string{"Get Cost Estimation", "View Pricing Services"},
		},
		{
			intent: models.IntentDesignServices,
			kinds:  []models.ActionKind{models.ActionScheduleConsultation, models.ActionViewServices},
			labels: []string{"Design Consultation", "View Design Services"},
		},
		{
			intent: models.IntentConstructionServices,
			kinds:  []models.ActionKind{models.ActionScheduleConsultation, models.ActionViewServices},
			labels: []string{"Construction Consultation", "Find Contractors"},
		},
		{
			intent: models.IntentConsultationRequest,
			kinds:  []models.ActionKind{models.ActionScheduleConsultation, models.ActionSubmitRequirements},
			labels: []string{"Schedule Free Consultation", "Submit Project Details"},
		},
		{
			intent: models.IntentPropertyInquiry,
			kinds:  []models.ActionKind{models.ActionSubmitRequirements, models.ActionViewServices},
			labels: []string{"Submit Property Requirements", "Browse Properties"},
		},
		{
			intent: models.IntentGeneral,
			kinds: []models.ActionKind{
				models.ActionScheduleConsultation,
				models.ActionViewServices,
				models.ActionSubmitRequirements,
			},
			labels: []string{"Free Consultation", "Explore Services", "Submit Requirements"},
		},
	}

	s := NewSynthesizer(nil)
	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			reply := s.Synthesize(tt.intent, models.Entities{}, models.ConversationContext{}, true)

			require.Len(t, reply.Actions, len(tt.kinds))
			assert.Equal(t, tt.kinds, actionKinds(reply.Actions))
			for i, label := range tt.labels {
				assert.Equal(t, label, reply.Actions[i].Label)
			}
			assert.NotEmpty(t, reply.Text)
		})
	}
}

func TestSynthesize_AmountInterpolation(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentBudgetInquiry, models.Entities{
		Amount: &models.MonetaryAmount{ValueInBaseUnits: 4_000_000},
	}, models.ConversationContext{}, true)

	assert.Contains(t, reply.Text, "₹40.0L")
}

func TestSynthesize_AmountFallsBackToContext(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentBudgetInquiry, models.Entities{}, models.ConversationContext{
		Budget: &models.MonetaryAmount{ValueInBaseUnits: 20_000_000},
	}, true)

	assert.Contains(t, reply.Text, "₹2.0Cr")
}

func TestSynthesize_TimelineInterpolation(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentConstructionServices, models.Entities{
		Duration: &models.Duration{ValueInDays: 180},
	}, models.ConversationContext{}, true)

	assert.Contains(t, reply.Text, "180 day(s)")
}

func TestSynthesize_LocationInterpolation(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentPropertyInquiry, models.Entities{
		Location: &models.LocationPhrase{Text: "Whitefield"},
	}, models.ConversationContext{}, true)

	assert.Contains(t, reply.Text, "Whitefield")
}

func TestSynthesize_NoEntityNoInterpolation(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentBudgetInquiry, models.Entities{}, models.ConversationContext{}, true)

	assert.NotContains(t, reply.Text, "₹")
	assert.NotContains(t, reply.Text, "{{")
}

func TestSynthesize_LeadSuffix(t *testing.T) {
	s := NewSynthesizer(nil)

	for _, intent := range models.AllIntents() {
		t.Run(string(intent), func(t *testing.T) {
			reply := s.Synthesize(intent, models.Entities{}, models.ConversationContext{}, false)
			assert.True(t, strings.HasSuffix(reply.Text, DefaultLeadSuffix),
				"unauthenticated reply must end with the lead-capture suffix")
		})
	}
}

func TestSynthesize_NoSuffixWhenAuthenticated(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentGeneral, models.Entities{}, models.ConversationContext{}, true)

	assert.NotContains(t, reply.Text, DefaultLeadSuffix)
}

func TestSynthesize_NoSuffixWhenLeadCaptured(t *testing.T) {
	s := NewSynthesizer(nil)

	reply := s.Synthesize(models.IntentGeneral, models.Entities{},
		models.ConversationContext{LeadCaptured: true}, false)

	assert.NotContains(t, reply.Text, DefaultLeadSuffix)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value    int64
		expected string
	}{
		{20_000_000, "₹2.0Cr"},
		{15_000_000, "₹1.5Cr"},
		{4_000_000, "₹40.0L"},
		{500_000, "₹5.0L"},
		{150_000, "₹1.5L"},
		{99_999, "₹99,999"},
		{10_000, "₹10,000"},
		{3_000, "₹3,000"},
		{999, "₹999"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.value))
		})
	}
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "180 day(s)", FormatDays(180))
	assert.Equal(t, "1 day(s)", FormatDays(1))
}

func TestGreetingActions(t *testing.T) {
	s := NewSynthesizer(nil)

	actions := s.GreetingActions()

	require.Len(t, actions, 3)
	assert.Equal(t, models.ActionScheduleConsultation, actions[0].Kind)
}
