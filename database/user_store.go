package database

import (
	"context"
	"time"

	"danstore_server/structs/tables"

	"github.com/google/uuid"
)

// UserStore persists accounts.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*tables.User, error) {
	return Query[tables.User](s.db).Where("email", email).First(ctx)
}

func (s *UserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	return Query[tables.User](s.db).Where("id", id).First(ctx)
}

func (s *UserStore) CreateUser(ctx context.Context, user *tables.User) (*tables.User, error) {
	return Query[tables.User](s.db).Insert(ctx, user)
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return Query[tables.User](s.db).Where("email", email).Exists(ctx)
}

func (s *UserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	user := &tables.User{Id: id, LastLogin: time.Now()}
	_, err := Query[tables.User](s.db).
		Where("id", id).
		Update(ctx, user, "last_login")
	return err
}
