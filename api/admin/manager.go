package admin

import (
	"danstore_server/api/middleware"
	"danstore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	storageService *services.StorageService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(logger *gecho.Logger, catalogService *services.CatalogService, storageService *services.StorageService, mw *middleware.Middleware) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		storageService: storageService,
		mw:             mw,
	}
}

// RegisterRoutes mounts the staff-only write surface.
func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Post("/products/", arm.HandleCreateProduct)
		r.Put("/products/{id}/", arm.HandleUpdateProduct)
		r.Delete("/products/{id}/", arm.HandleDeleteProduct)
		r.Post("/products/{id}/images/", arm.HandleUploadProductImage)

		r.Post("/categories/", arm.HandleCreateCategory)
		r.Delete("/categories/{id}/", arm.HandleDeleteCategory)
	})
}
