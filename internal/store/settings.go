package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/erazemk/inventorypro/internal/kv"
)

// KeyJWTSecret is the kv key holding the token signing secret.
const KeyJWTSecret = "jwt_secret"

// GetJWTSecret retrieves the JWT secret from the store.
// If no secret exists, it generates one, stores it, and returns it.
func GetJWTSecret(ctx context.Context, store kv.Store) (string, error) {
	secret, err := store.Get(ctx, KeyJWTSecret)
	if err == nil && len(secret) > 0 {
		return string(secret), nil
	}
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	if err := store.Set(ctx, KeyJWTSecret, []byte(candidate)); err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}
	return candidate, nil
}
