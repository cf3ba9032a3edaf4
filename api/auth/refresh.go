package auth

import (
	"net/http"

	"danstore_server/lib"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleRefresh rotates a refresh token. The presented token is revoked and
// the response carries a fresh pair.
func (arm *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RefreshRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract refresh body", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	pair, err := arm.authService.RefreshTokens(r.Context(), body.Refresh)
	if err != nil {
		arm.logger.Debug("Token refresh failed", gecho.Field("error", err))
		lib.WriteMessage(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	lib.WriteJSON(w, http.StatusOK, pair)
}
