package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"danstore_server/lib"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const notFoundMessage = "No encontrado"

// FetchProducts handles GET /api/products/ with optional search and category
// filters.
func (crm *CatalogRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	opts := structs.ProductListOptions{
		Search: query.Get("search"),
	}

	if category := query.Get("category"); category != "" {
		categoryID, err := strconv.ParseInt(category, 10, 64)
		if err != nil {
			crm.logger.Warn("Invalid category filter", gecho.Field("category", category))
			lib.WriteMessage(w, http.StatusBadRequest, "Categoría inválida")
			return
		}
		opts.CategoryID = &categoryID
	}

	products, err := crm.catalogService.ListProducts(ctx, opts)
	if err != nil {
		crm.logger.Error("Failed to fetch products", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusOK, products)
}

// FetchProductByID handles GET /api/products/{id}/
func (crm *CatalogRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		lib.WriteMessage(w, http.StatusNotFound, notFoundMessage)
		return
	}

	product, err := crm.catalogService.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			lib.WriteMessage(w, http.StatusNotFound, notFoundMessage)
			return
		}
		crm.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("product_id", id))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusOK, product)
}

// FetchCategories handles GET /api/categories/
func (crm *CatalogRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.catalogService.ListCategories(r.Context())
	if err != nil {
		crm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusOK, categories)
}

// FetchBrands handles GET /api/brands/
func (crm *CatalogRoutesManager) FetchBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := crm.catalogService.ListBrands(r.Context())
	if err != nil {
		crm.logger.Error("Failed to fetch brands", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusOK, brands)
}

// FetchRecommendations handles GET /api/recommendations/{id}/. An unknown
// anchor product yields an empty list rather than an error.
func (crm *CatalogRoutesManager) FetchRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		lib.WriteMessage(w, http.StatusNotFound, notFoundMessage)
		return
	}

	related, err := crm.catalogService.RelatedProducts(ctx, id)
	if err != nil {
		crm.logger.Error("Failed to fetch recommendations", gecho.Field("error", err), gecho.Field("product_id", id))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusOK, related)
}
