package turnlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"estate-assistant/internal/common/database"
	"estate-assistant/internal/models"
)

// ElasticsearchRecorder indexes turns for full-text search over past
// conversations.
type ElasticsearchRecorder struct {
	client *database.ElasticsearchClient
	index  string
}

// NewElasticsearchRecorder creates a recorder that indexes into the given
// index.
func NewElasticsearchRecorder(client *database.ElasticsearchClient, index string) *ElasticsearchRecorder {
	return &ElasticsearchRecorder{client: client, index: index}
}

// Record indexes one turn document keyed by turn ID.
func (r *ElasticsearchRecorder) Record(ctx context.Context, turn *models.TurnRecord) error {
	body, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn %s: %w", turn.ID, err)
	}

	es := r.client.Client
	res, err := es.Index(
		r.index,
		bytes.NewReader(body),
		es.Index.WithDocumentID(turn.ID),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index turn %s: %w", turn.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index turn %s: %s", turn.ID, res.Status())
	}
	return nil
}
