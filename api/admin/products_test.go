package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"danstore_server/api/middleware"
	"danstore_server/lib"
	"danstore_server/services"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCatalogStore keeps products and categories in maps, enough to drive
// the admin write surface.
type memoryCatalogStore struct {
	products   map[int64]*tables.Product
	categories map[int64]*tables.Category
	nextID     int64
}

var _ services.CatalogStore = (*memoryCatalogStore)(nil)

func newMemoryCatalogStore() *memoryCatalogStore {
	return &memoryCatalogStore{
		products:   make(map[int64]*tables.Product),
		categories: make(map[int64]*tables.Category),
	}
}

func (m *memoryCatalogStore) ListProducts(ctx context.Context, opts structs.ProductListOptions) ([]tables.Product, error) {
	return nil, nil
}

func (m *memoryCatalogStore) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memoryCatalogStore) ListRelatedProducts(ctx context.Context, categoryID, excludeID int64, limit int) ([]tables.Product, error) {
	return nil, nil
}

func (m *memoryCatalogStore) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	if _, ok := m.categories[product.CategoryID]; !ok {
		return nil, lib.ErrConflict
	}
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = product
	clone := *product
	return &clone, nil
}

func (m *memoryCatalogStore) UpdateProduct(ctx context.Context, product *tables.Product, columns ...string) error {
	if _, ok := m.products[product.ID]; !ok {
		return lib.ErrNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *memoryCatalogStore) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return lib.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memoryCatalogStore) ListCategories(ctx context.Context) ([]tables.Category, error) {
	return nil, nil
}

func (m *memoryCatalogStore) GetCategory(ctx context.Context, id int64) (*tables.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *memoryCatalogStore) CreateCategory(ctx context.Context, category *tables.Category) (*tables.Category, error) {
	for _, existing := range m.categories {
		if existing.Slug == category.Slug {
			return nil, lib.ErrConflict
		}
	}
	m.nextID++
	category.ID = m.nextID
	m.categories[category.ID] = category
	clone := *category
	return &clone, nil
}

func (m *memoryCatalogStore) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return lib.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *memoryCatalogStore) ListBrands(ctx context.Context) ([]string, error) { return nil, nil }

func (m *memoryCatalogStore) AddProductImage(ctx context.Context, image *tables.ProductImage) (*tables.ProductImage, error) {
	m.nextID++
	image.ID = m.nextID
	clone := *image
	return &clone, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (m *memoryCatalogStore) addCategory(name string) *tables.Category {
	m.nextID++
	c := &tables.Category{ID: m.nextID, Name: name, Slug: lib.Slugify(name)}
	m.categories[c.ID] = c
	return c
}

type adminFixture struct {
	router     chi.Router
	store      *memoryCatalogStore
	adminToken string
	userToken  string
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	logger := gecho.NewDefaultLogger()
	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret:  "access-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenSecret: "refresh-secret",
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}

	store := newMemoryCatalogStore()
	authService := services.NewAuthService(cfg, logger, nil, nil, nil)
	catalogService := services.NewCatalogService(logger, store, nil)
	mw := middleware.NewMiddleware(logger, authService)

	r := chi.NewRouter()
	NewAdminRoutesManager(logger, catalogService, nil, mw).RegisterRoutes(r)

	adminToken, err := authService.GenerateAccessToken(&tables.User{Id: uuid.New(), Email: "admin@example.com", IsStaff: true})
	require.NoError(t, err)
	userToken, err := authService.GenerateAccessToken(&tables.User{Id: uuid.New(), Email: "dan@example.com"})
	require.NoError(t, err)

	return &adminFixture{router: r, store: store, adminToken: adminToken, userToken: userToken}
}

func (f *adminFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireStaff(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(http.MethodPost, "/api/admin/products/", "", `{"name":"Polo","category":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/admin/products/", f.userToken, `{"name":"Polo","category":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, rec.Body.String())
}

func TestHandleCreateProduct(t *testing.T) {
	f := newAdminFixture(t)
	category := f.store.addCategory("Ropa")

	rec := f.do(http.MethodPost, "/api/admin/products/", f.adminToken,
		`{"name":"Polo","category":`+itoa(category.ID)+`,"price":"49.90","label":"OF"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"brand":"Generic"`)
	assert.Contains(t, rec.Body.String(), `"label_display":"Oferta"`)
}

func TestHandleCreateProductBadCategory(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(http.MethodPost, "/api/admin/products/", f.adminToken, `{"name":"Polo","category":99,"price":"49.90"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Categoría inválida"}`, rec.Body.String())
}

func TestHandleCreateProductBadLabel(t *testing.T) {
	f := newAdminFixture(t)
	category := f.store.addCategory("Ropa")

	rec := f.do(http.MethodPost, "/api/admin/products/", f.adminToken,
		`{"name":"Polo","category":`+itoa(category.ID)+`,"label":"XX"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Etiqueta inválida"}`, rec.Body.String())
}

func TestHandleUpdateProductNotFound(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(http.MethodPut, "/api/admin/products/42/", f.adminToken, `{"name":"Polo","category":1}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No encontrado"}`, rec.Body.String())
}

func TestHandleDeleteProduct(t *testing.T) {
	f := newAdminFixture(t)
	category := f.store.addCategory("Ropa")

	rec := f.do(http.MethodPost, "/api/admin/products/", f.adminToken,
		`{"name":"Polo","category":`+itoa(category.ID)+`,"price":"49.90"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodDelete, "/api/admin/products/"+itoa(f.store.nextID)+"/", f.adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodDelete, "/api/admin/products/"+itoa(f.store.nextID)+"/", f.adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCreateCategory(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(http.MethodPost, "/api/admin/categories/", f.adminToken, `{"name":"Hogar & Cocina"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"hogar-cocina"`)

	rec = f.do(http.MethodPost, "/api/admin/categories/", f.adminToken, `{"name":"Hogar & Cocina"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Existe"}`, rec.Body.String())
}
