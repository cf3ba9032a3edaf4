package services

import (
	"context"
	"testing"
	"time"

	"danstore_server/lib"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users map[uuid.UUID]*tables.User
}

var _ UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*tables.User)}
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*tables.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *tables.User) (*tables.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, lib.ErrConflict
		}
	}
	user.Id = uuid.New()
	user.CreatedAt = time.Now()
	f.users[user.Id] = user
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return lib.ErrNotFound
	}
	u.LastLogin = time.Now()
	return nil
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

var _ TokenBlacklist = (*fakeBlacklist)(nil)

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]time.Duration)}
}

func (f *fakeBlacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeBlacklist) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

func authTestConfig() *structs.Config {
	return &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret:  "access-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenSecret: "refresh-secret",
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Admin: &structs.AdminConfig{},
	}
}

func newAuthService(users UserStore, blacklist TokenBlacklist) *AuthService {
	return NewAuthService(authTestConfig(), gecho.NewDefaultLogger(), users, blacklist, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())
	ctx := context.Background()

	view, err := as.Register(ctx, &structs.RegisterRequest{
		Email:     "dan@example.com",
		Password:  "hunter2!",
		FirstName: "Dan",
	})
	require.NoError(t, err)

	assert.Equal(t, "dan@example.com", view.Email)
	assert.Equal(t, "dan@example.com", view.Username)
	assert.Equal(t, "Dan", view.Name)
	assert.Equal(t, view.ID, view.OID)
	assert.False(t, view.IsAdmin)

	loggedIn, err := as.Login(ctx, &structs.LoginRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)
	assert.Equal(t, view.ID, loggedIn.ID)
	assert.NotEmpty(t, loggedIn.Access)
	assert.NotEmpty(t, loggedIn.Refresh)

	// older clients send the email under the username key
	loggedIn, err = as.Login(ctx, &structs.LoginRequest{Username: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)
	assert.Equal(t, view.ID, loggedIn.ID)
}

func TestLoginNameFallsBackToEmail(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())
	ctx := context.Background()

	view, err := as.Register(ctx, &structs.RegisterRequest{
		Email:    "anon@example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.Equal(t, "anon@example.com", view.Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())
	ctx := context.Background()

	_, err := as.Register(ctx, &structs.RegisterRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)

	_, err = as.Login(ctx, &structs.LoginRequest{Email: "dan@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, err = as.Login(ctx, &structs.LoginRequest{Email: "nobody@example.com", Password: "hunter2!"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())
	ctx := context.Background()

	_, err := as.Register(ctx, &structs.RegisterRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)

	_, err = as.Register(ctx, &structs.RegisterRequest{Email: "dan@example.com", Password: "other"})
	assert.ErrorIs(t, err, lib.ErrConflict)
}

func TestRefreshTokensRotates(t *testing.T) {
	blacklist := newFakeBlacklist()
	as := newAuthService(newFakeUserStore(), blacklist)
	ctx := context.Background()

	_, err := as.Register(ctx, &structs.RegisterRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)
	loggedIn, err := as.Login(ctx, &structs.LoginRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)

	pair, err := as.RefreshTokens(ctx, loggedIn.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Len(t, blacklist.revoked, 1)

	// the rotated-out token must not be accepted a second time
	_, err = as.RefreshTokens(ctx, loggedIn.Refresh)
	assert.ErrorIs(t, err, lib.ErrInvalidToken)

	// the freshly issued refresh token still works
	_, err = as.RefreshTokens(ctx, pair.Refresh)
	require.NoError(t, err)
}

func TestRefreshTokensRejectsAccessToken(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())
	ctx := context.Background()

	_, err := as.Register(ctx, &structs.RegisterRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)
	loggedIn, err := as.Login(ctx, &structs.LoginRequest{Email: "dan@example.com", Password: "hunter2!"})
	require.NoError(t, err)

	// signed with the access secret, so it must fail verification
	_, err = as.RefreshTokens(ctx, loggedIn.Access)
	assert.ErrorIs(t, err, lib.ErrInvalidToken)
}

func TestRefreshTokensRejectsGarbage(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())

	_, err := as.RefreshTokens(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, lib.ErrInvalidToken)
}

func TestEnsureAdminUser(t *testing.T) {
	users := newFakeUserStore()
	cfg := authTestConfig()
	cfg.Admin = &structs.AdminConfig{Email: "admin@example.com", Password: "sup3rs3cret"}
	as := NewAuthService(cfg, gecho.NewDefaultLogger(), users, newFakeBlacklist(), nil)
	ctx := context.Background()

	require.NoError(t, as.EnsureAdminUser(ctx))
	admin, err := users.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsStaff)
	assert.Equal(t, "admin", admin.Role())

	// second run is a no-op
	require.NoError(t, as.EnsureAdminUser(ctx))
	assert.Len(t, users.users, 1)
}

func TestEnsureAdminUserUnconfigured(t *testing.T) {
	users := newFakeUserStore()
	as := newAuthService(users, newFakeBlacklist())

	require.NoError(t, as.EnsureAdminUser(context.Background()))
	assert.Empty(t, users.users)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	as := newAuthService(newFakeUserStore(), newFakeBlacklist())

	_, err := as.VerifyPassword("hunter2!", "not-an-argon2-hash")
	assert.Error(t, err)
}
