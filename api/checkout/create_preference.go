package checkout

import (
	"errors"
	"net/http"

	"danstore_server/lib"
	"danstore_server/payments"
	"danstore_server/services"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleCreatePreference converts the cart into a payment preference. When
// the processor rejects the cart its error body is passed through untouched.
func (crm *CheckoutRoutesManager) HandleCreatePreference(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreatePreferenceRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract checkout body", gecho.Field("error", err))
		lib.WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	initPoint, err := crm.checkoutService.CreatePreference(r.Context(), body.Items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			lib.WriteError(w, http.StatusBadRequest, "El carrito está vacío")
		case errors.Is(err, services.ErrInvalidCartItem):
			lib.WriteError(w, http.StatusBadRequest, "Precio o cantidad inválidos")
		default:
			var rejected *payments.RejectedError
			if errors.As(err, &rejected) {
				lib.WriteRaw(w, http.StatusBadRequest, rejected.Body)
				return
			}
			crm.logger.Error("Failed to create preference", gecho.Field("error", err))
			lib.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	lib.WriteJSON(w, http.StatusOK, structs.CreatePreferenceResponse{InitPoint: initPoint})
}
