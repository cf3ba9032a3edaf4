package api

import (
	"net/http"

	"danstore_server/api/admin"
	"danstore_server/api/auth"
	"danstore_server/api/catalog"
	"danstore_server/api/checkout"
	"danstore_server/api/health"
	"danstore_server/api/middleware"
	"danstore_server/config"
	"danstore_server/lib"
	"danstore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	// Initialize middleware
	mw := middleware.NewMiddleware(mwLogger, sm.AuthService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(10 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	// Register all routes
	NewRouterManager(
		catalog.NewCatalogRoutesManager(standardLogger, sm.CatalogService),
		auth.NewAuthRoutesManager(standardLogger, sm.AuthService, sm.EmailService),
		checkout.NewCheckoutRoutesManager(standardLogger, sm.CheckoutService),
		admin.NewAdminRoutesManager(standardLogger, sm.CatalogService, sm.StorageService, mw),
		health.NewHealthRoutesManager(standardLogger, sm.HealthService),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		lib.WriteMessage(w, http.StatusOK, "Welcome to the DAN STORE API")
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
	})

	return r
}
