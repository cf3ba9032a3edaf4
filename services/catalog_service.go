package services

import (
	"context"
	"errors"
	"fmt"

	"danstore_server/lib"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

var ErrInvalidLabel = errors.New("invalid label")

const relatedProductsLimit = 4

// CatalogService answers storefront catalog queries and carries the admin
// write path. Listings go through the cache when one is wired.
type CatalogService struct {
	logger *gecho.Logger
	store  CatalogStore
	cache  *CacheService
}

func NewCatalogService(logger *gecho.Logger, store CatalogStore, cache *CacheService) *CatalogService {
	return &CatalogService{
		logger: logger,
		store:  store,
		cache:  cache,
	}
}

// decorate fills the computed fields the store does not persist.
func decorate(products []tables.Product) []tables.Product {
	for i := range products {
		products[i].LabelDisplay = products[i].Label.Display()
		if products[i].Images == nil {
			products[i].Images = []tables.ProductImage{}
		}
	}
	return products
}

func listCacheKey(opts structs.ProductListOptions) string {
	category := int64(0)
	if opts.CategoryID != nil {
		category = *opts.CategoryID
	}
	return fmt.Sprintf("search:%s:category:%d", opts.Search, category)
}

func (cs *CatalogService) ListProducts(ctx context.Context, opts structs.ProductListOptions) ([]tables.Product, error) {
	if cs.cache != nil {
		if cached, err := cs.cache.GetProductList(ctx, listCacheKey(opts)); err == nil && cached != nil {
			return decorate(cached), nil
		}
	}

	products, err := cs.store.ListProducts(ctx, opts)
	if err != nil {
		cs.logger.Error("Failed to list products", gecho.Field("error", err))
		return nil, err
	}
	if products == nil {
		products = []tables.Product{}
	}

	if cs.cache != nil {
		if err := cs.cache.SetProductList(ctx, listCacheKey(opts), products); err != nil {
			cs.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}

	return decorate(products), nil
}

func (cs *CatalogService) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := cs.store.GetProduct(ctx, id)
	if err != nil {
		if !errors.Is(err, lib.ErrNotFound) {
			cs.logger.Error("Failed to get product", gecho.Field("error", err), gecho.Field("product_id", id))
		}
		return nil, err
	}

	product.LabelDisplay = product.Label.Display()
	if product.Images == nil {
		product.Images = []tables.ProductImage{}
	}
	return product, nil
}

// RelatedProducts returns up to four active products sharing the category.
// A missing or inactive anchor product yields an empty list, not an error.
func (cs *CatalogService) RelatedProducts(ctx context.Context, id int64) ([]tables.Product, error) {
	product, err := cs.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return []tables.Product{}, nil
		}
		cs.logger.Error("Failed to load anchor product for recommendations", gecho.Field("error", err), gecho.Field("product_id", id))
		return []tables.Product{}, nil
	}

	related, err := cs.store.ListRelatedProducts(ctx, product.CategoryID, product.ID, relatedProductsLimit)
	if err != nil {
		cs.logger.Error("Failed to list related products", gecho.Field("error", err), gecho.Field("product_id", id))
		return []tables.Product{}, nil
	}
	if related == nil {
		related = []tables.Product{}
	}

	return decorate(related), nil
}

func (cs *CatalogService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	categories, err := cs.store.ListCategories(ctx)
	if err != nil {
		cs.logger.Error("Failed to list categories", gecho.Field("error", err))
		return nil, err
	}
	if categories == nil {
		categories = []tables.Category{}
	}
	return categories, nil
}

func (cs *CatalogService) ListBrands(ctx context.Context) ([]string, error) {
	brands, err := cs.store.ListBrands(ctx)
	if err != nil {
		cs.logger.Error("Failed to list brands", gecho.Field("error", err))
		return nil, err
	}
	if brands == nil {
		brands = []string{}
	}
	return brands, nil
}

func (cs *CatalogService) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	if product.Label == "" {
		product.Label = structs.LabelNone
	}
	if !product.Label.Valid() {
		return nil, ErrInvalidLabel
	}
	if product.Brand == "" {
		product.Brand = "Generic"
	}

	created, err := cs.store.CreateProduct(ctx, product)
	if err != nil {
		cs.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", product.Name))
		return nil, err
	}

	cs.invalidateListings(ctx)
	created.LabelDisplay = created.Label.Display()
	if created.Images == nil {
		created.Images = []tables.ProductImage{}
	}
	return created, nil
}

func (cs *CatalogService) UpdateProduct(ctx context.Context, product *tables.Product, columns ...string) (*tables.Product, error) {
	if product.Label != "" && !product.Label.Valid() {
		return nil, ErrInvalidLabel
	}

	if err := cs.store.UpdateProduct(ctx, product, columns...); err != nil {
		if !errors.Is(err, lib.ErrNotFound) {
			cs.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", product.ID))
		}
		return nil, err
	}

	cs.invalidateListings(ctx)
	return cs.GetProduct(ctx, product.ID)
}

func (cs *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := cs.store.DeleteProduct(ctx, id); err != nil {
		if !errors.Is(err, lib.ErrNotFound) {
			cs.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		}
		return err
	}

	cs.invalidateListings(ctx)
	return nil
}

func (cs *CatalogService) CreateCategory(ctx context.Context, name string) (*tables.Category, error) {
	category := &tables.Category{
		Name: name,
		Slug: lib.Slugify(name),
	}

	created, err := cs.store.CreateCategory(ctx, category)
	if err != nil {
		if !errors.Is(err, lib.ErrConflict) {
			cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("name", name))
		}
		return nil, err
	}

	cs.invalidateListings(ctx)
	return created, nil
}

// DeleteCategory removes a category; products in it go away with the cascade.
func (cs *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := cs.store.DeleteCategory(ctx, id); err != nil {
		if !errors.Is(err, lib.ErrNotFound) {
			cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", id))
		}
		return err
	}

	cs.invalidateListings(ctx)
	return nil
}

// AddProductImage appends an image to a product's gallery.
func (cs *CatalogService) AddProductImage(ctx context.Context, image *tables.ProductImage) (*tables.ProductImage, error) {
	if _, err := cs.store.GetProduct(ctx, image.ProductID); err != nil {
		return nil, err
	}

	created, err := cs.store.AddProductImage(ctx, image)
	if err != nil {
		cs.logger.Error("Failed to add product image", gecho.Field("error", err), gecho.Field("product_id", image.ProductID))
		return nil, err
	}

	cs.invalidateListings(ctx)
	return created, nil
}

func (cs *CatalogService) invalidateListings(ctx context.Context) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.InvalidateProductCaches(ctx); err != nil {
		cs.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}
}
