package health

import (
	"net/http"

	"danstore_server/lib"
	"danstore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type HealthRoutesManager struct {
	logger        *gecho.Logger
	healthService *services.HealthService
}

func NewHealthRoutesManager(logger *gecho.Logger, healthService *services.HealthService) *HealthRoutesManager {
	return &HealthRoutesManager{
		logger:        logger,
		healthService: healthService,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/api/health/", hrm.HandleHealth)
}

// HandleHealth reports server, database and cache status. A broken database
// turns the response into a 503.
func (hrm *HealthRoutesManager) HandleHealth(w http.ResponseWriter, r *http.Request) {
	server := hrm.healthService.GetServerHealthStatus()
	db, dbErr := hrm.healthService.GetDatabaseHealthStatus()
	cache, _ := hrm.healthService.GetCacheHealthStatus()

	status := http.StatusOK
	if dbErr != nil {
		status = http.StatusServiceUnavailable
	}

	lib.WriteJSON(w, status, map[string]any{
		"server":   server,
		"database": db,
		"cache":    cache,
	})
}
