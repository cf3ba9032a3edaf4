package api

import (
	"danstore_server/api/admin"
	"danstore_server/api/auth"
	"danstore_server/api/catalog"
	"danstore_server/api/checkout"
	"danstore_server/api/health"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	catalogRoutes  *catalog.CatalogRoutesManager
	authRoutes     *auth.AuthRoutesManager
	checkoutRoutes *checkout.CheckoutRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	healthRoutes   *health.HealthRoutesManager
}

func NewRouterManager(
	catalogRoutes *catalog.CatalogRoutesManager,
	authRoutes *auth.AuthRoutesManager,
	checkoutRoutes *checkout.CheckoutRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
	healthRoutes *health.HealthRoutesManager,
) *routerManager {
	return &routerManager{
		catalogRoutes:  catalogRoutes,
		authRoutes:     authRoutes,
		checkoutRoutes: checkoutRoutes,
		adminRoutes:    adminRoutes,
		healthRoutes:   healthRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.catalogRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.checkoutRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
