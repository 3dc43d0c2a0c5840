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

// WarehousesHandler handles warehouse endpoints.
type WarehousesHandler struct {
	Warehouses *store.WarehouseStore
	Logger     *zap.Logger
}

// List returns warehouses matching the query filters.
func (h *WarehousesHandler) List(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseWarehouse(r.URL.Query())
	jsonResponse(w, http.StatusOK, f.Apply(h.Warehouses.List(r.Context())))
}

// Get returns a single warehouse.
func (h *WarehousesHandler) Get(w http.ResponseWriter, r *http.Request) {
	wh := h.Warehouses.Get(r.Context(), chi.URLParam(r, "id"))
	if wh == nil {
		jsonError(w, http.StatusNotFound, "warehouse not found")
		return
	}
	jsonResponse(w, http.StatusOK, wh)
}

// Create adds a new warehouse.
func (h *WarehousesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewWarehouse
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wh, err := h.Warehouses.Add(r.Context(), req)
	if err != nil {
		storeError(w, h.Logger, err, "create warehouse")
		return
	}

	h.Logger.Info("warehouse created", zap.String("id", wh.ID), zap.String("name", wh.Name))
	jsonResponse(w, http.StatusCreated, wh)
}

// Update applies a partial update to a warehouse.
func (h *WarehousesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.WarehousePatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wh, err := h.Warehouses.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		storeError(w, h.Logger, err, "update warehouse")
		return
	}
	if wh == nil {
		jsonError(w, http.StatusNotFound, "warehouse not found")
		return
	}
	jsonResponse(w, http.StatusOK, wh)
}

// Delete removes a warehouse. Items and transfers naming it are left as they are.
func (h *WarehousesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.Warehouses.Remove(r.Context(), id)
	if err != nil {
		storeError(w, h.Logger, err, "delete warehouse")
		return
	}
	if removed {
		h.Logger.Info("warehouse deleted", zap.String("id", id))
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

// Export writes the filtered warehouses as CSV.
func (h *WarehousesHandler) Export(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseWarehouse(r.URL.Query())

	var buf bytes.Buffer
	if err := export.WriteWarehouses(&buf, f.Apply(h.Warehouses.List(r.Context()))); err != nil {
		storeError(w, h.Logger, err, "export warehouses")
		return
	}
	writeCSV(w, export.WarehousesFileName, buf.Bytes())
}
