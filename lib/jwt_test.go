package lib

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, exp time.Time) (string, uuid.UUID, uuid.UUID) {
	t.Helper()

	sub := uuid.New()
	jti := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub.String(),
		"email": "dan@example.com",
		"role":  "user",
		"iat":   time.Now().Unix(),
		"exp":   exp.Unix(),
		"jti":   jti.String(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed, sub, jti
}

func TestParseTokenRoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	signed, sub, jti := signTestToken(t, "secret", exp)

	claims, err := ParseToken(signed, "secret")
	require.NoError(t, err)

	assert.Equal(t, sub, claims.Sub)
	assert.Equal(t, jti, claims.Jti)
	assert.Equal(t, "dan@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, exp.Unix(), claims.Exp.Unix())
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, _, _ := signTestToken(t, "secret", time.Now().Add(time.Hour))

	_, err := ParseToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "Token abc")
	_, err = ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer ")
	_, err = ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer abc")
	token, err := ExtractBearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
