package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub   uuid.UUID `json:"sub"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Iat   time.Time `json:"iat"`
	Exp   time.Time `json:"exp"`
	Jti   uuid.UUID `json:"jti"`
}

// LoginRequest accepts the identifier under either key; older clients send
// the email as "username".
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// Identifier returns the email to look the user up by.
func (lr *LoginRequest) Identifier() string {
	if lr.Email != "" {
		return lr.Email
	}
	return lr.Username
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// UserView is the public projection of a user. It never carries the password
// hash or any token.
type UserView struct {
	ID       uuid.UUID `json:"id"`
	OID      uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	IsAdmin  bool      `json:"isAdmin"`
}

// LoginResponse merges the public user view with both tokens in one flat
// payload.
type LoginResponse struct {
	UserView
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
