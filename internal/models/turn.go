package models

import "time"

// TurnRecord is the summary persisted after a completed turn. Recording is
// fire-and-forget: the reply has already been delivered by the time a record
// is written, so failures never reach the user.
type TurnRecord struct {
	ID        string    `json:"id" db:"id"`
	SessionID string    `json:"sessionId" db:"session_id"`
	UserText  string    `json:"userText" db:"user_text"`
	ReplyText string    `json:"replyText" db:"reply_text"`
	Intent    Intent    `json:"intent" db:"intent"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
