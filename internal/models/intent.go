package models

// Intent is the single label assigned to one user turn. It is derived fresh
// from that turn's text and never accumulated in the conversation context.
type Intent string

const (
	IntentBudgetInquiry        Intent = "budget_inquiry"
	IntentDesignServices       Intent = "design_services"
	IntentConstructionServices Intent = "construction_services"
	IntentConsultationRequest  Intent = "consultation_request"
	IntentPropertyInquiry      Intent = "property_inquiry"
	IntentGeneral              Intent = "general"
)

// AllIntents lists every intent in classifier precedence order, the general
// fallback last.
func AllIntents() []Intent {
	return []Intent{
		IntentBudgetInquiry,
		IntentDesignServices,
		IntentConstructionServices,
		IntentConsultationRequest,
		IntentPropertyInquiry,
		IntentGeneral,
	}
}
