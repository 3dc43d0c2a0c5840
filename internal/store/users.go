package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

// KeyRegisteredUsers is the kv key holding self-registered accounts.
const KeyRegisteredUsers = "inventorypro_registered_users"

// DemoPassword is the password shared by the built-in demo accounts.
const DemoPassword = "password123"

var (
	// ErrInvalidCredentials is returned when no account matches an email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
)

type account struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// demoAccounts are hashed once per process.
var demoAccounts = sync.OnceValues(func() ([]account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}
	return []account{
		{User: model.User{ID: "1", Email: "admin@inventorypro.com", Role: model.RoleAdmin, Name: "Admin User"}, PasswordHash: string(hash)},
		{User: model.User{ID: "2", Email: "manager@inventorypro.com", Role: model.RoleManager, Name: "Manager"}, PasswordHash: string(hash)},
		{User: model.User{ID: "3", Email: "staff@inventorypro.com", Role: model.RoleStaff, Name: "Staff Member"}, PasswordHash: string(hash)},
	}, nil
})

// UserStore holds the demo accounts and self-registered users.
type UserStore struct {
	kv   kv.Store
	demo []account

	mu         sync.Mutex
	registered []account
}

// NewUserStore loads registered users.
func NewUserStore(ctx context.Context, store kv.Store) (*UserStore, error) {
	demo, err := demoAccounts()
	if err != nil {
		return nil, err
	}
	s := &UserStore{kv: store, demo: demo}

	raw, err := store.Get(ctx, KeyRegisteredUsers)
	if errors.Is(err, kv.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", KeyRegisteredUsers, err)
	}
	if err := json.Unmarshal(raw, &s.registered); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", KeyRegisteredUsers, err)
	}
	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// find returns the account with the given email. Caller holds s.mu.
func (s *UserStore) find(email string) *account {
	email = normalizeEmail(email)
	for _, accounts := range [][]account{s.demo, s.registered} {
		for i := range accounts {
			if normalizeEmail(accounts[i].Email) == email {
				return &accounts[i]
			}
		}
	}
	return nil
}

// Authenticate checks an email and password against demo accounts first,
// then registered users.
func (s *UserStore) Authenticate(_ context.Context, email, password string) (*model.User, error) {
	s.mu.Lock()
	acct := s.find(email)
	s.mu.Unlock()

	if acct == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	user := acct.User
	return &user, nil
}

// Register creates a self-service account. An empty role means staff.
func (s *UserStore) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	reg.Email = normalizeEmail(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Role == "" {
		reg.Role = model.RoleStaff
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(reg.Email) != nil {
		return nil, ErrUserExists
	}

	acct := account{
		User:         model.User{ID: uuid.NewString(), Email: reg.Email, Role: reg.Role, Name: reg.Name},
		PasswordHash: string(hash),
	}
	registered := append(slices.Clone(s.registered), acct)
	if err := s.save(ctx, registered); err != nil {
		return nil, err
	}
	s.registered = registered

	user := acct.User
	return &user, nil
}

// List returns demo accounts followed by registered users.
func (s *UserStore) List(_ context.Context) []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.demo)+len(s.registered))
	for _, a := range s.demo {
		users = append(users, a.User)
	}
	for _, a := range s.registered {
		users = append(users, a.User)
	}
	return users
}

// Get returns a user by ID, or nil.
func (s *UserStore) Get(_ context.Context, id string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, accounts := range [][]account{s.demo, s.registered} {
		for _, a := range accounts {
			if a.ID == id {
				user := a.User
				return &user
			}
		}
	}
	return nil
}

// Delete removes a registered user and reports whether it existed.
// Demo accounts cannot be deleted.
func (s *UserStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.demo, func(a account) bool { return a.ID == id }) {
		return false, fmt.Errorf("deleting user: %w: demo accounts cannot be deleted", model.ErrInvalid)
	}
	i := slices.IndexFunc(s.registered, func(a account) bool { return a.ID == id })
	if i < 0 {
		return false, nil
	}
	registered := slices.Delete(slices.Clone(s.registered), i, i+1)
	if err := s.save(ctx, registered); err != nil {
		return false, err
	}
	s.registered = registered
	return true, nil
}

func (s *UserStore) save(ctx context.Context, registered []account) error {
	if registered == nil {
		registered = []account{}
	}
	raw, err := json.Marshal(registered)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", KeyRegisteredUsers, err)
	}
	if err := s.kv.Set(ctx, KeyRegisteredUsers, raw); err != nil {
		return fmt.Errorf("saving %s: %w", KeyRegisteredUsers, err)
	}
	return nil
}
