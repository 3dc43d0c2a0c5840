package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/auth"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Users      *store.UserStore
	Tokens     *store.TokenStore
	JWTSecret  string
	LoginDelay time.Duration
	Logger     *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// wait pauses for the configured delay. It returns false if the request was
// cancelled first.
func (h *AuthHandler) wait(ctx context.Context) bool {
	if h.LoginDelay <= 0 {
		return true
	}
	timer := time.NewTimer(h.LoginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.wait(r.Context()) {
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.Logger.Info("login failed", zap.String("email", req.Email))
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, *user)
	if err != nil {
		h.Logger.Error("failed to generate token", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.Logger.Info("user logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	jsonResponse(w, http.StatusOK, LoginResponse{Token: token, User: *user})
}

// Register creates a self-service account. The caller still has to log in.
// Self-registered accounts are staff; admins create others through the
// users endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.Registration
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role != "" && req.Role != model.RoleStaff {
		jsonError(w, http.StatusForbidden, "self-registration is limited to staff accounts")
		return
	}
	if !h.wait(r.Context()) {
		return
	}

	user, err := h.Users.Register(r.Context(), req)
	if err != nil {
		storeError(w, h.Logger, err, "register user")
		return
	}

	h.Logger.Info("user registered", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	jsonResponse(w, http.StatusCreated, user)
}

// Logout revokes the caller's token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	expiresAt := time.Now().Add(auth.TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.Tokens.Revoke(r.Context(), claims.ID, expiresAt); err != nil {
		h.Logger.Error("failed to revoke token", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the identity carried by the caller's token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, claims.User())
}
