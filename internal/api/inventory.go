package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/export"
	"github.com/erazemk/inventorypro/internal/filter"
	"github.com/erazemk/inventorypro/internal/imaging"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/store"
)

// maxImportBytes caps the size of an uploaded CSV.
const maxImportBytes = 5 << 20

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	Items  *store.InventoryStore
	Logger *zap.Logger
}

// List returns inventory items matching the query filters.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filter.ParseInventory(r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, f.Apply(h.Items.List(r.Context())))
}

// Get returns a single item.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := h.Items.Get(r.Context(), chi.URLParam(r, "id"))
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create adds a new item.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewInventoryItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Items.Add(r.Context(), req)
	if err != nil {
		storeError(w, h.Logger, err, "create item")
		return
	}

	h.Logger.Info("item created", zap.String("id", item.ID), zap.String("name", item.Name))
	jsonResponse(w, http.StatusCreated, item)
}

// Update applies a partial update to an item.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.InventoryPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Items.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		storeError(w, h.Logger, err, "update item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete removes an item. Deleting an unknown id is not an error.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.Items.Remove(r.Context(), id)
	if err != nil {
		storeError(w, h.Logger, err, "delete item")
		return
	}
	if removed {
		h.Logger.Info("item deleted", zap.String("id", id))
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

// Export writes the filtered inventory as CSV.
func (h *InventoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := filter.ParseInventory(r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.WriteInventory(&buf, f.Apply(h.Items.List(r.Context()))); err != nil {
		storeError(w, h.Logger, err, "export inventory")
		return
	}
	writeCSV(w, export.InventoryFileName, buf.Bytes())
}

// ImportResponse acknowledges an uploaded CSV.
type ImportResponse struct {
	Rows    int    `json:"rows"`
	Message string `json:"message"`
}

// Import counts the data rows of an uploaded CSV. Rows are acknowledged,
// not stored. The file is read from the multipart "file" field, or from the
// raw body for other content types.
func (h *InventoryHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "missing file")
			return
		}
		defer file.Close()
		src = file
	}

	rows, err := export.CountRows(src)
	if err != nil {
		storeError(w, h.Logger, err, "import inventory")
		return
	}

	h.Logger.Info("inventory csv received", zap.Int("rows", rows))
	jsonResponse(w, http.StatusOK, ImportResponse{
		Rows:    rows,
		Message: "Successfully imported " + strconv.Itoa(rows) + " items from CSV",
	})
}

// UploadImage stores a picture for an item, sent either as the multipart
// "image" field or as the raw body.
func (h *InventoryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if h.Items.Get(ctx, id) == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Leave room for multipart framing around the picture.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+(1<<20))
	defer r.Body.Close()

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("image")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "missing image")
			return
		}
		defer file.Close()
		src = file
	}

	pic, err := imaging.Thumbnail(src)
	if err != nil {
		storeError(w, h.Logger, err, "process image")
		return
	}
	if err := h.Items.Images().Set(ctx, id, pic.Data); err != nil {
		storeError(w, h.Logger, err, "store image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]int{"width": pic.Width, "height": pic.Height})
}

// GetImage serves an item's picture.
func (h *InventoryHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, err := h.Items.Images().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.Logger, err, "load image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "image not found")
		return
	}

	w.Header().Set("Content-Type", imaging.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(data); err != nil {
		h.Logger.Warn("failed to write image response", zap.Error(err))
	}
}

// writeCSV sends data as a CSV download.
func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
