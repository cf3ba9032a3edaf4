package services

import (
	"danstore_server/database"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	CatalogService  *CatalogService
	CheckoutService *CheckoutService
	EmailService    *EmailService
	CacheService    *CacheService
	HealthService   *HealthService
	StorageService  *StorageService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, preferences PreferenceClient) (*ServiceManager, error) {
	cacheService := NewCacheService(logger, cfg)
	catalogStore := database.NewCatalogStore(db)
	userStore := database.NewUserStore(db)

	authService := NewAuthService(cfg, logger, userStore, cacheService, cacheService)
	catalogService := NewCatalogService(logger, catalogStore, cacheService)
	checkoutService := NewCheckoutService(cfg, logger, preferences)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)

	storageService, err := NewStorageService(logger, cfg.Storage)
	if err != nil {
		return nil, err
	}

	return &ServiceManager{
		AuthService:     authService,
		CatalogService:  catalogService,
		CheckoutService: checkoutService,
		EmailService:    emailService,
		CacheService:    cacheService,
		HealthService:   healthService,
		StorageService:  storageService,
	}, nil
}
