package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/erazemk/inventorypro/internal/kv"
)

// KeyRevokedTokens is the kv key holding revoked token IDs and their expiry.
const KeyRevokedTokens = "revoked_tokens"

// TokenStore is the token revocation list.
type TokenStore struct {
	kv  kv.Store
	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewTokenStore loads the revocation list.
func NewTokenStore(ctx context.Context, store kv.Store, opts ...Option) (*TokenStore, error) {
	s := &TokenStore{kv: store, now: applyOptions(opts).now, revoked: make(map[string]time.Time)}

	raw, err := store.Get(ctx, KeyRevokedTokens)
	if errors.Is(err, kv.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", KeyRevokedTokens, err)
	}
	if err := json.Unmarshal(raw, &s.revoked); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", KeyRevokedTokens, err)
	}
	return s, nil
}

// Revoke adds a token's JTI to the revocation list.
func (s *TokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	revoked := make(map[string]time.Time, len(s.revoked)+1)
	now := s.now()
	// Expired tokens are rejected anyway, so drop them while rewriting.
	for id, exp := range s.revoked {
		if exp.After(now) {
			revoked[id] = exp
		}
	}
	revoked[jti] = expiresAt

	raw, err := json.Marshal(revoked)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", KeyRevokedTokens, err)
	}
	if err := s.kv.Set(ctx, KeyRevokedTokens, raw); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	s.revoked = revoked
	return nil
}

// IsRevoked checks if a token's JTI has been revoked.
func (s *TokenStore) IsRevoked(_ context.Context, jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[jti]
	return ok
}
