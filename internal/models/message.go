package models

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ActionKind enumerates the follow-up actions the assistant can suggest.
type ActionKind string

const (
	ActionScheduleConsultation ActionKind = "schedule_consultation"
	ActionViewServices         ActionKind = "view_services"
	ActionSubmitRequirements   ActionKind = "submit_requirements"
)

// Action is a suggested follow-up attached to an assistant message. It has no
// identity of its own beyond the message that carries it.
type Action struct {
	Kind    ActionKind             `json:"kind"`
	Label   string                 `json:"label"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Message is one entry in a session transcript. Messages are append-only:
// once created they are never mutated or removed.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Actions   []Action  `json:"actions,omitempty"` // assistant messages only
}
