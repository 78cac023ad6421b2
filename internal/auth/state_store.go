package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"spendtrack/internal/cache"
)

const (
	stateKeyPrefix = "oauth_state:"
	// StateTTL bounds how long a federated login round-trip may take.
	StateTTL = 10 * time.Minute
)

// ErrUnknownState is returned when a callback presents a state nonce that was
// never issued or has already been consumed.
var ErrUnknownState = errors.New("unknown or expired oauth state")

// StateStoreInterface defines the interface for OAuth state nonce storage.
type StateStoreInterface interface {
	Issue(ctx context.Context, provider string) (string, error)
	Consume(ctx context.Context, state string) (provider string, err error)
}

// StateStore handles storage of one-shot OAuth state nonces in Redis.
type StateStore struct {
	cache *cache.Client
}

// Ensure StateStore implements StateStoreInterface
var _ StateStoreInterface = (*StateStore)(nil)

// NewStateStore creates a new state store.
func NewStateStore(cache *cache.Client) *StateStore {
	return &StateStore{cache: cache}
}

// Issue generates an unguessable state nonce bound to a provider name.
func (s *StateStore) Issue(ctx context.Context, provider string) (string, error) {
	state := uuid.New().String()
	key := stateKeyPrefix + state
	if err := s.cache.Set(ctx, key, []byte(provider), StateTTL); err != nil {
		return "", err
	}
	return state, nil
}

// Consume validates and deletes a state nonce, returning the provider it was
// issued for. A nonce is valid at most once.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	key := stateKeyPrefix + state
	data, err := s.cache.GetDel(ctx, key)
	if err != nil || data == nil {
		return "", ErrUnknownState
	}
	return string(data), nil
}
