package services

import (
	"context"
	"time"

	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/google/uuid"
)

// CatalogStore is the persistence surface the catalog service depends on.
// The database package provides the production implementation; tests swap in
// an in-memory fake.
type CatalogStore interface {
	ListProducts(ctx context.Context, opts structs.ProductListOptions) ([]tables.Product, error)
	GetProduct(ctx context.Context, id int64) (*tables.Product, error)
	ListRelatedProducts(ctx context.Context, categoryID, excludeID int64, limit int) ([]tables.Product, error)
	CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error)
	UpdateProduct(ctx context.Context, product *tables.Product, columns ...string) error
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]tables.Category, error)
	GetCategory(ctx context.Context, id int64) (*tables.Category, error)
	CreateCategory(ctx context.Context, category *tables.Category) (*tables.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListBrands(ctx context.Context) ([]string, error)

	AddProductImage(ctx context.Context, image *tables.ProductImage) (*tables.ProductImage, error)
}

// UserStore is the persistence surface the auth service depends on.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*tables.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*tables.User, error)
	CreateUser(ctx context.Context, user *tables.User) (*tables.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// TokenBlacklist revokes refresh tokens by jti until they expire on their own.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}
