package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/export"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
	"github.com/erazemk/inventorypro/internal/store"
)

// ReportsHandler generates reports over the current inventory.
type ReportsHandler struct {
	Stores *store.Stores
	Logger *zap.Logger
}

// Get generates a report. With format=csv the report is sent as a download,
// which additionally requires export permission.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	opts := report.Options{
		Type:      report.Type(chi.URLParam(r, "type")),
		Warehouse: q.Get("warehouse"),
		Category:  q.Get("category"),
	}

	rep, err := report.Generate(opts, h.Stores.Inventory.List(ctx), h.Stores.Transfers.List(ctx))
	if err != nil {
		storeError(w, h.Logger, err, "generate report")
		return
	}

	if q.Get("format") != "csv" {
		jsonResponse(w, http.StatusOK, rep)
		return
	}

	if claims := GetClaims(ctx); claims == nil || !model.Can(claims.Role, model.ActionExport, model.ResourceReports) {
		jsonError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, rep); err != nil {
		storeError(w, h.Logger, err, "export report")
		return
	}
	writeCSV(w, report.FileName(rep.Type, time.Now().Format(model.DateLayout)), buf.Bytes())
}
