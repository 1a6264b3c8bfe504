// Package snapshot mirrors conversation context into Redis so state survives
// a process restart and stays inspectable by operators.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estate-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "assistant:ctx:"

// ErrNotFound is returned by Load when no snapshot exists for the session.
var ErrNotFound = errors.New("snapshot not found")

// Store persists per-session conversation context with a TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a snapshot store. Keys expire after ttl so abandoned
// sessions clean themselves up.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Save writes the current context for a session, refreshing its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, cc models.ConversationContext) error {
	data, err := json.Marshal(cc)
	if err != nil {
		return fmt.Errorf("marshal context for %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", sessionID, err)
	}
	return nil
}

// Load reads the stored context for a session.
func (s *Store) Load(ctx context.Context, sessionID string) (models.ConversationContext, error) {
	var cc models.ConversationContext

	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cc, ErrNotFound
	}
	if err != nil {
		return cc, fmt.Errorf("load snapshot for %s: %w", sessionID, err)
	}

	if err := json.Unmarshal(data, &cc); err != nil {
		return cc, fmt.Errorf("decode snapshot for %s: %w", sessionID, err)
	}
	return cc, nil
}

// Delete removes the snapshot when a session ends.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot for %s: %w", sessionID, err)
	}
	return nil
}
