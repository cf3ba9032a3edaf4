package catalog

import (
	"danstore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CatalogRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
}

func NewCatalogRoutesManager(logger *gecho.Logger, catalogService *services.CatalogService) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:         logger,
		catalogService: catalogService,
	}
}

// RegisterRoutes mounts the public catalog endpoints. The storefront calls
// every path with a trailing slash.
func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/api/products/", crm.FetchProducts)
	r.Get("/api/products/{id}/", crm.FetchProductByID)
	r.Get("/api/categories/", crm.FetchCategories)
	r.Get("/api/brands/", crm.FetchBrands)
	r.Get("/api/recommendations/{id}/", crm.FetchRecommendations)
}
