package models

// ConversationContext is the per-session state accumulated across turns.
// Fields are last-write-wins: a newly extracted value replaces the previous
// one, while a turn that extracts nothing leaves the field untouched. A field
// that has been set is never reverted to absent during the session.
type ConversationContext struct {
	LeadCaptured bool            `json:"leadCaptured"`
	Interests    []string        `json:"interests,omitempty"`
	Budget       *MonetaryAmount `json:"budget,omitempty"`
	Timeline     *Duration       `json:"timeline,omitempty"`
	Location     string          `json:"location,omitempty"`
}

// Clone returns a deep copy, used when handing context to observers that must
// not share memory with the live session.
func (c ConversationContext) Clone() ConversationContext {
	out := c
	if c.Interests != nil {
		out.Interests = append([]string(nil), c.Interests...)
	}
	if c.Budget != nil {
		b := *c.Budget
		out.Budget = &b
	}
	if c.Timeline != nil {
		t := *c.Timeline
		out.Timeline = &t
	}
	return out
}
