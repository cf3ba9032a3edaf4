package database

import (
	"context"

	"danstore_server/lib"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/uptrace/bun"
)

// CatalogStore persists products, categories and gallery images.
type CatalogStore struct {
	db *DB
}

func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func orderedImages(sq *bun.SelectQuery) *bun.SelectQuery {
	return sq.Order("sort_order ASC").Order("id ASC")
}

func (s *CatalogStore) ListProducts(ctx context.Context, opts structs.ProductListOptions) ([]tables.Product, error) {
	q := Query[tables.Product](s.db).
		Where("is_active", true).
		RelationWith("Images", orderedImages).
		OrderBy("created_at", DESC)

	if opts.Search != "" {
		q = q.WhereILike("name", "%"+opts.Search+"%")
	}
	if opts.CategoryID != nil {
		q = q.Where("category_id", *opts.CategoryID)
	}

	return q.All(ctx)
}

func (s *CatalogStore) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	return Query[tables.Product](s.db).
		Where("id", id).
		RelationWith("Images", orderedImages).
		First(ctx)
}

func (s *CatalogStore) ListRelatedProducts(ctx context.Context, categoryID, excludeID int64, limit int) ([]tables.Product, error) {
	return Query[tables.Product](s.db).
		Where("category_id", categoryID).
		WhereOp("id", "!=", excludeID).
		RelationWith("Images", orderedImages).
		OrderBy("created_at", DESC).
		Limit(limit).
		All(ctx)
}

func (s *CatalogStore) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	return Query[tables.Product](s.db).Insert(ctx, product)
}

func (s *CatalogStore) UpdateProduct(ctx context.Context, product *tables.Product, columns ...string) error {
	affected, err := Query[tables.Product](s.db).
		Where("id", product.ID).
		Update(ctx, product, columns...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (s *CatalogStore) DeleteProduct(ctx context.Context, id int64) error {
	affected, err := Query[tables.Product](s.db).Where("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]tables.Category, error) {
	return Query[tables.Category](s.db).OrderBy("name", ASC).All(ctx)
}

func (s *CatalogStore) GetCategory(ctx context.Context, id int64) (*tables.Category, error) {
	return Query[tables.Category](s.db).Where("id", id).First(ctx)
}

func (s *CatalogStore) CreateCategory(ctx context.Context, category *tables.Category) (*tables.Category, error) {
	return Query[tables.Category](s.db).Insert(ctx, category)
}

func (s *CatalogStore) DeleteCategory(ctx context.Context, id int64) error {
	affected, err := Query[tables.Category](s.db).Where("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// ListBrands returns the distinct brands across all products, sorted.
func (s *CatalogStore) ListBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := WithRetry(ctx, func() error {
		brands = brands[:0]
		return s.db.NewSelect().
			Model((*tables.Product)(nil)).
			ColumnExpr("DISTINCT brand").
			Order("brand ASC").
			Scan(ctx, &brands)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return brands, nil
}

func (s *CatalogStore) AddProductImage(ctx context.Context, image *tables.ProductImage) (*tables.ProductImage, error) {
	return Query[tables.ProductImage](s.db).Insert(ctx, image)
}
