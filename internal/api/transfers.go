package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/export"
	"github.com/erazemk/inventorypro/internal/filter"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/store"
)

// TransfersHandler handles transfer endpoints.
type TransfersHandler struct {
	Transfers *store.TransferStore
	Logger    *zap.Logger
}

// List returns transfers matching the query filters.
func (h *TransfersHandler) List(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseTransfer(r.URL.Query())
	jsonResponse(w, http.StatusOK, f.Apply(h.Transfers.List(r.Context())))
}

// Get returns a single transfer.
func (h *TransfersHandler) Get(w http.ResponseWriter, r *http.Request) {
	t := h.Transfers.Get(r.Context(), chi.URLParam(r, "id"))
	if t == nil {
		jsonError(w, http.StatusNotFound, "transfer not found")
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// Create requests a new transfer. The requester defaults to the caller's role.
func (h *TransfersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewTransfer
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RequestedBy == "" {
		if claims := GetClaims(r.Context()); claims != nil {
			req.RequestedBy = string(claims.Role)
		}
	}

	t, err := h.Transfers.Add(r.Context(), req)
	if err != nil {
		storeError(w, h.Logger, err, "create transfer")
		return
	}

	h.Logger.Info("transfer created",
		zap.String("id", t.ID),
		zap.String("from", t.FromWarehouse),
		zap.String("to", t.ToWarehouse),
		zap.Int("quantity", t.Quantity),
	)
	jsonResponse(w, http.StatusCreated, t)
}

type statusRequest struct {
	Status model.TransferStatus `json:"status"`
}

// UpdateStatus moves a transfer to a new status.
func (h *TransfersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Transfers.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		storeError(w, h.Logger, err, "update transfer")
		return
	}
	if t == nil {
		jsonError(w, http.StatusNotFound, "transfer not found")
		return
	}

	h.Logger.Info("transfer status changed", zap.String("id", t.ID), zap.String("status", string(t.Status)))
	jsonResponse(w, http.StatusOK, t)
}

// Delete removes a transfer.
func (h *TransfersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.Transfers.Remove(r.Context(), id)
	if err != nil {
		storeError(w, h.Logger, err, "delete transfer")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

// Export writes the filtered transfers as CSV.
func (h *TransfersHandler) Export(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseTransfer(r.URL.Query())

	var buf bytes.Buffer
	if err := export.WriteTransfers(&buf, f.Apply(h.Transfers.List(r.Context()))); err != nil {
		storeError(w, h.Logger, err, "export transfers")
		return
	}
	writeCSV(w, export.TransfersFileName, buf.Bytes())
}
