package auth

import (
	"net/http"

	"danstore_server/lib"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract login body", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	if body.Identifier() == "" {
		lib.WriteMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	response, err := arm.authService.Login(r.Context(), body)
	if err != nil {
		arm.logger.Debug("Login failed", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	lib.WriteJSON(w, http.StatusOK, response)
}
