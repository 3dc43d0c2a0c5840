// Package session keeps the signed-in identity of a client. At most one
// identity is stored at a time, and its role cannot change until it is
// cleared.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

// Key is the kv key holding the current identity.
const Key = "inventorypro_user"

// ErrAlreadyAuthenticated is returned when signing in over an existing identity.
var ErrAlreadyAuthenticated = errors.New("already authenticated")

// State is the session state.
type State string

// Session states.
const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Identity is the signed-in user and the bearer token the server issued.
type Identity struct {
	model.User
	Token string `json:"token,omitempty"`
}

// Session persists the current identity in a kv.Store.
type Session struct {
	kv kv.Store
	mu sync.Mutex
}

// New returns a session backed by store.
func New(store kv.Store) *Session {
	return &Session{kv: store}
}

// Current returns the signed-in identity, or nil when anonymous.
func (s *Session) Current(ctx context.Context) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

func (s *Session) current(ctx context.Context) (*Identity, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &id, nil
}

// State reports whether an identity is stored.
func (s *Session) State(ctx context.Context) (State, error) {
	id, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if id == nil {
		return StateAnonymous, nil
	}
	return StateAuthenticated, nil
}

// Authenticate stores id as the current identity. It fails with
// ErrAlreadyAuthenticated if one is already stored.
func (s *Session) Authenticate(ctx context.Context, id Identity) error {
	if !id.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", model.ErrInvalid, id.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.current(ctx)
	if err != nil {
		return err
	}
	if current != nil {
		return fmt.Errorf("%w as %s", ErrAlreadyAuthenticated, current.Email)
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear forgets the current identity. Clearing an anonymous session is a no-op.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
