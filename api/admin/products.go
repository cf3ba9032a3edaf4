package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"danstore_server/lib"
	"danstore_server/services"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Name          string              `json:"name" validate:"required"`
	Description   string              `json:"description"`
	Brand         string              `json:"brand"`
	Category      int64               `json:"category" validate:"required"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	Image         string              `json:"image"`
	Label         structs.Label       `json:"label"`
	IsBlackFriday bool                `json:"is_black_friday"`
	IsActive      *bool               `json:"is_active"`
}

func (pr *productRequest) toProduct() *tables.Product {
	isActive := true
	if pr.IsActive != nil {
		isActive = *pr.IsActive
	}

	return &tables.Product{
		Name:          pr.Name,
		Description:   pr.Description,
		Brand:         pr.Brand,
		CategoryID:    pr.Category,
		Price:         pr.Price,
		OriginalPrice: pr.OriginalPrice,
		Image:         pr.Image,
		Label:         pr.Label,
		IsBlackFriday: pr.IsBlackFriday,
		IsActive:      isActive,
	}
}

func (arm *AdminRoutesManager) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[productRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	product, err := arm.catalogService.CreateProduct(r.Context(), body.toProduct())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLabel):
			lib.WriteMessage(w, http.StatusBadRequest, "Etiqueta inválida")
		case errors.Is(err, lib.ErrConflict):
			// category_id pointing nowhere trips the foreign key
			lib.WriteMessage(w, http.StatusBadRequest, "Categoría inválida")
		default:
			arm.logger.Error("Failed to create product", gecho.Field("error", err))
			lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	lib.WriteJSON(w, http.StatusCreated, product)
}

func (arm *AdminRoutesManager) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
		return
	}

	body, err := lib.ExtractAndValidateBody[productRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	product := body.toProduct()
	product.ID = id
	product.UpdatedAt = time.Now()

	updated, err := arm.catalogService.UpdateProduct(r.Context(), product,
		"name", "description", "brand", "category_id", "price", "original_price",
		"image", "label", "is_black_friday", "is_active", "updated_at")
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
		case errors.Is(err, services.ErrInvalidLabel):
			lib.WriteMessage(w, http.StatusBadRequest, "Etiqueta inválida")
		case errors.Is(err, lib.ErrConflict):
			lib.WriteMessage(w, http.StatusBadRequest, "Categoría inválida")
		default:
			arm.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
			lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	lib.WriteJSON(w, http.StatusOK, updated)
}

func (arm *AdminRoutesManager) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
		return
	}

	if err := arm.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
			return
		}
		arm.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
