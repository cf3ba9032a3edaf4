package admin

import (
	"errors"
	"net/http"
	"strconv"

	"danstore_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (arm *AdminRoutesManager) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[categoryRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract category body", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	category, err := arm.catalogService.CreateCategory(r.Context(), body.Name)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			lib.WriteMessage(w, http.StatusBadRequest, "Existe")
			return
		}
		arm.logger.Error("Failed to create category", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lib.WriteJSON(w, http.StatusCreated, category)
}

func (arm *AdminRoutesManager) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
		return
	}

	if err := arm.catalogService.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			lib.WriteMessage(w, http.StatusNotFound, "No encontrado")
			return
		}
		arm.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", id))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
