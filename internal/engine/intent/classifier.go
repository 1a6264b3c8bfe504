// Package intent assigns a single intent label to each user turn.
package intent

import (
	"strings"

	"estate-assistant/internal/models"
)

// rule pairs an intent with the keywords that trigger it. Rules are evaluated
// top to bottom and the first rule with any keyword present wins, so the slice
// order is the tie-break contract: "help me budget for construction" resolves
// to budget_inquiry because the budget rule is listed before construction.
type rule struct {
	intent   models.Intent
	keywords []string
}

var rules = []rule{
	{models.IntentBudgetInquiry, []string{"budget", "cost", "price"}},
	{models.IntentDesignServices, []string{"design", "architect", "plan"}},
	{models.IntentConstructionServices, []string{"construction", "build", "contractor"}},
	{models.IntentConsultationRequest, []string{"consultation", "advice", "help"}},
	{models.IntentPropertyInquiry, []string{"property", "house", "flat"}},
}

// Classify returns the intent of a single turn. It is pure, total and
// case-insensitive; text matching no rule falls through to general.
func Classify(text string) models.Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return models.IntentGeneral
}
