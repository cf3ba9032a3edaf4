package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"danstore_server/services"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMiddleware() (*Middleware, *services.AuthService) {
	logger := gecho.NewDefaultLogger()
	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret:  "access-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenSecret: "refresh-secret",
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
	authService := services.NewAuthService(cfg, logger, nil, nil, nil)
	return NewMiddleware(logger, authService), authService
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestUserAuthMiddleware(t *testing.T) {
	mw, authService := testMiddleware()
	handler := mw.UserAuthMiddleware(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := authService.GenerateAccessToken(&tables.User{Id: uuid.New(), Email: "dan@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthMiddleware(t *testing.T) {
	mw, authService := testMiddleware()

	var gotClaims *structs.AuthClaims
	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	userID := uuid.New()
	userToken, err := authService.GenerateAccessToken(&tables.User{Id: userID, Email: "dan@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	mw.AdminAuthMiddleware(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminID := uuid.New()
	adminToken, err := authService.GenerateAccessToken(&tables.User{Id: adminID, Email: "admin@example.com", IsStaff: true})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, gotClaims)
	assert.Equal(t, adminID, gotClaims.Sub)
	assert.Equal(t, "admin", gotClaims.Role)
}

func TestAdminAuthMiddlewareRejectsForgedToken(t *testing.T) {
	mw, _ := testMiddleware()
	handler := mw.AdminAuthMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged.token.value")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
