package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

func TestAuthenticateDemoUsers(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	tests := []struct {
		email string
		role  model.Role
	}{
		{"admin@inventorypro.com", model.RoleAdmin},
		{"manager@inventorypro.com", model.RoleManager},
		{"staff@inventorypro.com", model.RoleStaff},
	}
	for _, tt := range tests {
		user, err := stores.Users.Authenticate(ctx, tt.email, DemoPassword)
		if err != nil {
			t.Fatalf("Authenticate(%q): %v", tt.email, err)
		}
		if user.Role != tt.role {
			t.Errorf("expected role %q, got %q", tt.role, user.Role)
		}
	}

	if _, err := stores.Users.Authenticate(ctx, "admin@inventorypro.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := stores.Users.Authenticate(ctx, "nobody@example.com", DemoPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()
	users, err := NewUserStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewUserStore: %v", err)
	}

	user, err := users.Register(ctx, model.Registration{
		Email: "Jane@Example.com", Password: "s3cret-pass", Name: "Jane", Role: model.RoleManager,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" || user.Email != "jane@example.com" {
		t.Errorf("unexpected user %+v", user)
	}

	got, err := users.Authenticate(ctx, "jane@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID || got.Role != model.RoleManager {
		t.Errorf("unexpected user %+v", got)
	}

	// Passwords are stored hashed.
	raw, _ := backend.Get(ctx, KeyRegisteredUsers)
	if strings.Contains(string(raw), "s3cret-pass") {
		t.Error("plaintext password persisted")
	}
	var stored []map[string]any
	json.Unmarshal(raw, &stored)
	if len(stored) != 1 || stored[0]["passwordHash"] == "" {
		t.Errorf("unexpected stored users %s", raw)
	}

	// Reloading keeps the account.
	reloaded, err := NewUserStore(ctx, backend)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := reloaded.Authenticate(ctx, "jane@example.com", "s3cret-pass"); err != nil {
		t.Errorf("Authenticate after reload: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	_, err := stores.Users.Register(ctx, model.Registration{
		Email: "staff@inventorypro.com", Password: "password123", Name: "Copy", Role: model.RoleStaff,
	})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}

	_, err = stores.Users.Register(ctx, model.Registration{Email: "bad", Password: "password123", Name: "X"})
	if !errors.Is(err, model.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	user, err := stores.Users.Register(ctx, model.Registration{
		Email: "temp@example.com", Password: "password123", Name: "Temp",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.RoleStaff {
		t.Errorf("expected default role staff, got %q", user.Role)
	}
	if n := len(stores.Users.List(ctx)); n != 4 {
		t.Errorf("expected 4 users, got %d", n)
	}

	if _, err := stores.Users.Delete(ctx, "1"); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("expected demo delete to fail, got %v", err)
	}

	removed, err := stores.Users.Delete(ctx, user.ID)
	if err != nil || !removed {
		t.Fatalf("Delete: %v, %v", removed, err)
	}
	if stores.Users.Get(ctx, user.ID) != nil {
		t.Error("expected user to be gone")
	}
	if removed, _ := stores.Users.Delete(ctx, user.ID); removed {
		t.Error("expected second delete to report false")
	}
}
