package tables

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	tableName    struct{}  `bun:"table:users,alias:u"`
	Id           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Username     string    `json:"username" bun:"username,unique,notnull"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	FirstName    string    `json:"first_name" bun:"first_name"`
	LastName     string    `json:"last_name" bun:"last_name"`
	IsStaff      bool      `json:"is_staff" bun:"is_staff,notnull,default:false"`
	LastLogin    time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
}

// DisplayName prefers the first name and falls back to the email for users
// who registered without one.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// Role maps the staff flag onto the token role claim.
func (u *User) Role() string {
	if u.IsStaff {
		return "admin"
	}
	return "user"
}
