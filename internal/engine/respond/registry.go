package respond

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/models"
)

// Placeholders recognized inside template texts.
const (
	placeholderAmount   = "{{amount}}"
	placeholderDays     = "{{days}}"
	placeholderLocation = "{{location}}"
)

// ActionDefinition is one suggested action as declared by a template.
type ActionDefinition struct {
	Kind  models.ActionKind `json:"kind"`
	Label string            `json:"label"`
}

// TemplateDefinition describes the reply for one intent. Text is the base
// reply; the optional entity texts are appended when the corresponding entity
// is known, with their placeholder substituted. Wording can be overridden
// from a registry file, but which entities a template interpolates and which
// actions it attaches (and their order) is the structural contract of the
// engine.
type TemplateDefinition struct {
	Intent       models.Intent      `json:"intent"`
	Text         string             `json:"text"`
	AmountText   string             `json:"amountText,omitempty"`
	TimelineText string             `json:"timelineText,omitempty"`
	LocationText string             `json:"locationText,omitempty"`
	Actions      []ActionDefinition `json:"actions"`
}

// registrySchema validates template registry files before they replace the
// built-in defaults.
const registrySchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["intent", "text", "actions"],
		"additionalProperties": false,
		"properties": {
			"intent": {
				"type": "string",
				"enum": ["budget_inquiry", "design_services", "construction_services", "consultation_request", "property_inquiry", "general"]
			},
			"text": {"type": "string", "minLength": 1},
			"amountText": {"type": "string"},
			"timelineText": {"type": "string"},
			"locationText": {"type": "string"},
			"actions": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["kind", "label"],
					"additionalProperties": false,
					"properties": {
						"kind": {
							"type": "string",
							"enum": ["schedule_consultation", "view_services", "submit_requirements"]
						},
						"label": {"type": "string", "minLength": 1}
					}
				}
			}
		}
	}
}`

func defaultTemplates() []TemplateDefinition {
	return []TemplateDefinition{
		{
			Intent:     models.IntentBudgetInquiry,
			Text:       "Budget planning is the right place to start.",
			AmountText: "A budget of {{amount}} gives us a solid range to work with.",
			Actions: []ActionDefinition{
				{Kind: models.ActionScheduleConsultation, Label: "Get Cost Estimation"},
				{Kind: models.ActionViewServices, Label: "View Pricing Services"},
			},
		},
		{
			Intent: models.IntentDesignServices,
			Text:   "Our design team covers 2D layouts, 3D visualisation and full architectural drawings.",
			Actions: []ActionDefinition{
				{Kind: models.ActionScheduleConsultation, Label: "Design Consultation"},
				{Kind: models.ActionViewServices, Label: "View Design Services"},
			},
		},
		{
			Intent:       models.IntentConstructionServices,
			Text:         "We can connect you with verified contractors and builders.",
			TimelineText: "A {{days}} timeline is workable.",
			Actions: []ActionDefinition{
				{Kind: models.ActionScheduleConsultation, Label: "Construction Consultation"},
				{Kind: models.ActionViewServices, Label: "Find Contractors"},
			},
		},
		{
			Intent: models.IntentConsultationRequest,
			Text:   "Happy to help. We offer a free consultation with our experts.",
			Actions: []ActionDefinition{
				{Kind: models.ActionScheduleConsultation, Label: "Schedule Free Consultation"},
				{Kind: models.ActionSubmitRequirements, Label: "Submit Project Details"},
			},
		},
		{
			Intent:       models.IntentPropertyInquiry,
			Text:         "We list verified properties across our partner cities.",
			LocationText: "Let me pull up options in {{location}}.",
			AmountText:   "We have listings around {{amount}}.",
			Actions: []ActionDefinition{
				{Kind: models.ActionSubmitRequirements, Label: "Submit Property Requirements"},
				{Kind: models.ActionViewServices, Label: "Browse Properties"},
			},
		},
		{
			Intent: models.IntentGeneral,
			Text:   "I can help you with property search, design, construction and budget planning.",
			Actions: []ActionDefinition{
				{Kind: models.ActionScheduleConsultation, Label: "Free Consultation"},
				{Kind: models.ActionViewServices, Label: "Explore Services"},
				{Kind: models.ActionSubmitRequirements, Label: "Submit Requirements"},
			},
		},
	}
}

// Registry maps intents to reply templates. Every intent always has a
// template: file overrides replace defaults per intent, never remove them.
type Registry struct {
	templates map[models.Intent]TemplateDefinition
}

// DefaultRegistry returns the built-in templates.
func DefaultRegistry() *Registry {
	reg := &Registry{templates: make(map[models.Intent]TemplateDefinition)}
	for _, tpl := range defaultTemplates() {
		reg.templates[tpl.Intent] = tpl
	}
	return reg
}

// LoadRegistry reads a registry file, validates it against the registry
// schema and lays its templates over the defaults.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template registry: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(registrySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, errors.NewTemplateRegistryInvalidError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, errors.NewTemplateRegistryInvalidError(strings.Join(msgs, "; "))
	}

	var overrides []TemplateDefinition
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, errors.NewTemplateRegistryInvalidError(err.Error())
	}

	reg := DefaultRegistry()
	for _, tpl := range overrides {
		reg.templates[tpl.Intent] = tpl
	}
	return reg, nil
}

// Template returns the definition for an intent, falling back to the general
// template for unknown labels.
func (r *Registry) Template(intent models.Intent) TemplateDefinition {
	if tpl, ok := r.templates[intent]; ok {
		return tpl
	}
	return r.templates[models.IntentGeneral]
}
