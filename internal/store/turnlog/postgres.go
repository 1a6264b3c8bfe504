package turnlog

import (
	"context"
	"fmt"

	"estate-assistant/internal/common/database"
	"estate-assistant/internal/models"
)

const insertTurnQuery = `
	INSERT INTO assistant_turns (id, session_id, user_text, reply_text, intent, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// PostgresRecorder appends turns to the assistant_turns table.
type PostgresRecorder struct {
	client *database.PostgresClient
}

// NewPostgresRecorder creates a recorder backed by PostgreSQL.
func NewPostgresRecorder(client *database.PostgresClient) *PostgresRecorder {
	return &PostgresRecorder{client: client}
}

// Record inserts one turn row.
func (r *PostgresRecorder) Record(ctx context.Context, turn *models.TurnRecord) error {
	_, err := r.client.Exec(ctx, insertTurnQuery,
		turn.ID,
		turn.SessionID,
		turn.UserText,
		turn.ReplyText,
		string(turn.Intent),
		turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert turn %s: %w", turn.ID, err)
	}
	return nil
}
