package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/store"
)

// UsersHandler handles user management endpoints.
type UsersHandler struct {
	Users  *store.UserStore
	Logger *zap.Logger
}

// List returns all users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Users.List(r.Context()))
}

// Get returns a single user.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := h.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Create adds an account with any role.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Registration
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.Register(r.Context(), req)
	if err != nil {
		storeError(w, h.Logger, err, "create user")
		return
	}

	h.Logger.Info("user created", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	jsonResponse(w, http.StatusCreated, user)
}

// Delete removes a registered user. Built-in accounts are refused.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if claims := GetClaims(r.Context()); claims != nil && claims.UserID == id {
		jsonError(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	removed, err := h.Users.Delete(r.Context(), id)
	if err != nil {
		storeError(w, h.Logger, err, "delete user")
		return
	}
	if removed {
		h.Logger.Info("user deleted", zap.String("id", id))
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}
