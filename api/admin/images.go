package admin

import (
	"errors"
	"net/http"
	"strconv"

	"danstore_server/lib"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const maxImageSize = 10 << 20 // 10 MB

// HandleUploadProductImage accepts a multipart upload, stores the file in
// object storage and appends it to the product's gallery.
func (arm *AdminRoutesManager) HandleUploadProductImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		arm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Archivo inválido")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		lib.WriteMessage(w, http.StatusBadRequest, "Archivo inválido")
		return
	}
	defer file.Close()

	sortOrder := 0
	if raw := r.FormValue("sort_order"); raw != "" {
		if sortOrder, err = strconv.Atoi(raw); err != nil {
			lib.WriteMessage(w, http.StatusBadRequest, "Orden inválido")
			return
		}
	}
	isSwatch := r.FormValue("is_swatch") == "true"

	url, err := arm.storageService.UploadProductImage(ctx, productID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		arm.logger.Error("Failed to upload product image", gecho.Field("error", err), gecho.Field("product_id", productID))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	image, err := arm.catalogService.AddProductImage(ctx, &tables.ProductImage{
		ProductID: productID,
		URL:       url,
		SortOrder: sortOrder,
		IsSwatch:  isSwatch,
	})
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
			return
		}
		arm.logger.Error("Failed to attach product image", gecho.Field("error", err), gecho.Field("product_id", productID))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusCreated, image)
}
