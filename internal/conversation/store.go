package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bellevuewa/chatbot-multilingual/pkg/redis"
)

// Store persists conversation state between turns.
type Store interface {
	Get(ctx context.Context, conversationID string) (*State, error)
	Save(ctx context.Context, conversationID string, state *State) error
}

// RedisStore keeps conversation state as JSON in Redis. The driving
// framework serializes turns per conversation, so no cross-turn locking
// is needed here.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed conversation state store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func stateKey(conversationID string) string {
	return "conversation:state:" + conversationID
}

// Get loads the state for a conversation, lazily creating the default
// state when none exists yet.
func (s *RedisStore) Get(ctx context.Context, conversationID string) (*State, error) {
	raw, err := s.client.GetString(ctx, stateKey(conversationID))
	if err == goredis.Nil {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode conversation state: %w", err)
	}
	if state.LanguagePreference == "" {
		state.LanguagePreference = NewState().LanguagePreference
	}
	return &state, nil
}

// Save writes the state back. State has no expiry; its lifetime is owned
// by the external conversation store's policy.
func (s *RedisStore) Save(ctx context.Context, conversationID string, state *State) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode conversation state: %w", err)
	}
	if err := s.client.SetWithExpiration(ctx, stateKey(conversationID), encoded, 0); err != nil {
		return fmt.Errorf("failed to save conversation state: %w", err)
	}
	return nil
}

// MemoryStore is an in-process store for tests and single-node runs.
type MemoryStore struct {
	states map[string]*State
}

// NewMemoryStore creates an empty in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

// Get loads or lazily creates the state for a conversation.
func (s *MemoryStore) Get(ctx context.Context, conversationID string) (*State, error) {
	if state, ok := s.states[conversationID]; ok {
		return state, nil
	}
	state := NewState()
	s.states[conversationID] = state
	return state, nil
}

// Save stores the state.
func (s *MemoryStore) Save(ctx context.Context, conversationID string, state *State) error {
	s.states[conversationID] = state
	return nil
}
