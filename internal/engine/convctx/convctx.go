// Package convctx accumulates extracted entities into the per-session
// conversation context.
package convctx

import "estate-assistant/internal/models"

// Apply folds one turn's extraction result into the context. Each field is
// last-write-wins: a present entity overwrites the previous value, an absent
// one leaves the field untouched, so context only ever accumulates. The
// LeadCaptured flag and interest set are owned by the session manager and are
// not modified here.
func Apply(ctx *models.ConversationContext, e models.Entities) {
	if e.Amount != nil {
		amount := *e.Amount
		ctx.Budget = &amount
	}
	if e.Duration != nil {
		duration := *e.Duration
		ctx.Timeline = &duration
	}
	if e.Location != nil {
		ctx.Location = e.Location.Text
	}
}
