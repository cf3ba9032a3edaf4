package auth

import (
	"errors"
	"net/http"

	"danstore_server/lib"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract register body", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	response, err := arm.authService.Register(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			lib.WriteMessage(w, http.StatusBadRequest, "Existe")
			return
		}
		arm.logger.Error("Registration failed", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusInternalServerError, "Error interno")
		return
	}

	if arm.emailService != nil {
		user := &tables.User{
			Email:     response.Email,
			FirstName: body.FirstName,
		}
		go func() {
			if err := arm.emailService.SendWelcomeEmail(user); err != nil {
				arm.logger.Warn("Failed to send welcome email", gecho.Field("error", err), gecho.Field("email", user.Email))
			}
		}()
	}

	lib.WriteJSON(w, http.StatusOK, response)
}
