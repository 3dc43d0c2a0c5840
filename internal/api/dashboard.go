package api

import (
	"net/http"

	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
	"github.com/erazemk/inventorypro/internal/store"
)

// DashboardHandler serves the summary statistics.
type DashboardHandler struct {
	Stores *store.Stores
}

// Get returns dashboard statistics. Recent transfers are included only for
// callers allowed to view transfers.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var transfers []model.Transfer
	if claims := GetClaims(ctx); claims != nil && model.Can(claims.Role, model.ActionView, model.ResourceTransfers) {
		transfers = h.Stores.Transfers.List(ctx)
	}

	stats := report.Dashboard(h.Stores.Inventory.List(ctx), h.Stores.Warehouses.List(ctx), transfers)
	jsonResponse(w, http.StatusOK, stats)
}
