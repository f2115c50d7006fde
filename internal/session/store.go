package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/massfitdev/massfit-bot/pkg/redis"
)

const ttl = 24 * time.Hour

// State is a chat's conversation position: the step tag plus any captured
// fields. Last write wins; there is no cross-field locking.
type State struct {
	Step   string            `json:"step"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Field returns a captured field value, empty when absent.
func (s State) Field(key string) string {
	if s.Fields == nil {
		return ""
	}
	return s.Fields[key]
}

type keyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(chatID int64) string
}

// Store persists per-chat conversation state in Redis.
type Store struct {
	kv keyValueStore
}

// NewStore binds the store to a redis client.
func NewStore(kv keyValueStore) (*Store, error) {
	if kv == nil {
		return nil, errors.New("redis client is required")
	}
	return &Store{kv: kv}, nil
}

// Get loads the chat's state. A missing session yields a zero State.
func (s *Store) Get(ctx context.Context, chatID int64) (State, error) {
	raw, err := s.kv.Get(ctx, s.kv.SessionKey(chatID))
	if errors.Is(err, redis.Nil) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("loading session: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, fmt.Errorf("decoding session: %w", err)
	}
	return state, nil
}

// SetStep replaces the chat's step, keeping captured fields.
func (s *Store) SetStep(ctx context.Context, chatID int64, step string) error {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		return err
	}
	state.Step = step
	return s.save(ctx, chatID, state)
}

// Update applies a mutation to the chat's state and persists the result.
func (s *Store) Update(ctx context.Context, chatID int64, mutate func(*State)) error {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if state.Fields == nil {
		state.Fields = map[string]string{}
	}
	mutate(&state)
	return s.save(ctx, chatID, state)
}

// Clear removes the chat's state. Clearing an absent session is a no-op.
func (s *Store) Clear(ctx context.Context, chatID int64) error {
	return s.kv.Del(ctx, s.kv.SessionKey(chatID))
}

func (s *Store) save(ctx context.Context, chatID int64, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.kv.Set(ctx, s.kv.SessionKey(chatID), string(payload), ttl)
}
