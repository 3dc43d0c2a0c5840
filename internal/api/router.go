// Package api is the HTTP/JSON surface of the service.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/store"
)

// Config holds router settings.
type Config struct {
	JWTSecret string
	// LoginDelay slows down login and signup responses.
	LoginDelay time.Duration
	Logger     *zap.Logger
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(stores *store.Stores, cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	authHandler := &AuthHandler{
		Users:      stores.Users,
		Tokens:     stores.Tokens,
		JWTSecret:  cfg.JWTSecret,
		LoginDelay: cfg.LoginDelay,
		Logger:     log.Named("auth"),
	}
	dashboardHandler := &DashboardHandler{Stores: stores}
	inventoryHandler := &InventoryHandler{Items: stores.Inventory, Logger: log.Named("inventory")}
	warehousesHandler := &WarehousesHandler{Warehouses: stores.Warehouses, Logger: log.Named("warehouses")}
	transfersHandler := &TransfersHandler{Transfers: stores.Transfers, Logger: log.Named("transfers")}
	reportsHandler := &ReportsHandler{Stores: stores, Logger: log.Named("reports")}
	usersHandler := &UsersHandler{Users: stores.Users, Logger: log.Named("users")}

	can := RequirePermission

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(log.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public.
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.JWTSecret, stores.Tokens))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.With(can(model.ActionView, model.ResourceDashboard)).Get("/dashboard", dashboardHandler.Get)

			r.Route("/inventory", func(r chi.Router) {
				r.With(can(model.ActionView, model.ResourceInventory)).Get("/", inventoryHandler.List)
				r.With(can(model.ActionCreate, model.ResourceInventory)).Post("/", inventoryHandler.Create)
				r.With(can(model.ActionExport, model.ResourceInventory)).Get("/export", inventoryHandler.Export)
				r.With(can(model.ActionCreate, model.ResourceInventory)).Post("/import", inventoryHandler.Import)
				r.With(can(model.ActionView, model.ResourceInventory)).Get("/{id}", inventoryHandler.Get)
				r.With(can(model.ActionEdit, model.ResourceInventory)).Put("/{id}", inventoryHandler.Update)
				r.With(can(model.ActionDelete, model.ResourceInventory)).Delete("/{id}", inventoryHandler.Delete)
				r.With(can(model.ActionEdit, model.ResourceInventory)).Put("/{id}/image", inventoryHandler.UploadImage)
				r.With(can(model.ActionView, model.ResourceInventory)).Get("/{id}/image", inventoryHandler.GetImage)
			})

			r.Route("/warehouses", func(r chi.Router) {
				r.With(can(model.ActionView, model.ResourceWarehouses)).Get("/", warehousesHandler.List)
				r.With(can(model.ActionCreate, model.ResourceWarehouses)).Post("/", warehousesHandler.Create)
				r.With(can(model.ActionExport, model.ResourceWarehouses)).Get("/export", warehousesHandler.Export)
				r.With(can(model.ActionView, model.ResourceWarehouses)).Get("/{id}", warehousesHandler.Get)
				r.With(can(model.ActionEdit, model.ResourceWarehouses)).Put("/{id}", warehousesHandler.Update)
				r.With(can(model.ActionDelete, model.ResourceWarehouses)).Delete("/{id}", warehousesHandler.Delete)
			})

			r.Route("/transfers", func(r chi.Router) {
				r.With(can(model.ActionView, model.ResourceTransfers)).Get("/", transfersHandler.List)
				r.With(can(model.ActionCreate, model.ResourceTransfers)).Post("/", transfersHandler.Create)
				r.With(can(model.ActionExport, model.ResourceTransfers)).Get("/export", transfersHandler.Export)
				r.With(can(model.ActionView, model.ResourceTransfers)).Get("/{id}", transfersHandler.Get)
				r.With(can(model.ActionEdit, model.ResourceTransfers)).Put("/{id}/status", transfersHandler.UpdateStatus)
				r.With(can(model.ActionDelete, model.ResourceTransfers)).Delete("/{id}", transfersHandler.Delete)
			})

			r.With(can(model.ActionView, model.ResourceReports)).Get("/reports/{type}", reportsHandler.Get)

			r.Route("/users", func(r chi.Router) {
				r.With(can(model.ActionView, model.ResourceUsers)).Get("/", usersHandler.List)
				r.With(can(model.ActionCreate, model.ResourceUsers)).Post("/", usersHandler.Create)
				r.With(can(model.ActionView, model.ResourceUsers)).Get("/{id}", usersHandler.Get)
				r.With(can(model.ActionDelete, model.ResourceUsers)).Delete("/{id}", usersHandler.Delete)
			})
		})
	})

	return r
}
