package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"danstore_server/lib"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type AuthService struct {
	logger    *gecho.Logger
	cfg       *structs.Config
	users     UserStore
	blacklist TokenBlacklist
	cache     *CacheService
}

// NewAuthService builds the auth service. cache may be nil; user lookups then
// always hit the store.
func NewAuthService(cfg *structs.Config, logger *gecho.Logger, users UserStore, blacklist TokenBlacklist, cache *CacheService) *AuthService {
	return &AuthService{
		logger:    logger,
		cfg:       cfg,
		users:     users,
		blacklist: blacklist,
		cache:     cache,
	}
}

// UserViewOf projects a user into its public shape. The storefront reads the
// id under both keys and expects the first name, falling back to the email.
func UserViewOf(user *tables.User) structs.UserView {
	return structs.UserView{
		ID:       user.Id,
		OID:      user.Id,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.DisplayName(),
		IsAdmin:  user.IsStaff,
	}
}

func (as *AuthService) Login(ctx context.Context, loginRequest *structs.LoginRequest) (*structs.LoginResponse, error) {
	startTime := time.Now()
	identifier := loginRequest.Identifier()

	user, err := as.users.GetUserByEmail(ctx, identifier)
	if err != nil {
		if !errors.Is(err, lib.ErrNotFound) {
			as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		} else {
			as.logger.Debug("User not found during login attempt", gecho.Field("identifier", identifier))
		}

		// Always return invalid credentials (don't leak user existence)
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(loginRequest.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", identifier),
			gecho.Field("user_id", user.Id),
		)
		return nil, lib.ErrInvalidCredentials
	}

	if err := as.users.TouchLastLogin(ctx, user.Id); err != nil {
		as.logger.Warn("Failed to update last login", gecho.Field("error", err), gecho.Field("user_id", user.Id))
	}

	response, err := as.buildLoginResponse(user)
	if err != nil {
		return nil, err
	}

	if as.cache != nil {
		user.PasswordHash = ""
		if cacheErr := as.cache.SetUserInCache(ctx, user); cacheErr != nil {
			as.logger.Warn("Failed to set user in cache after login", gecho.Field("error", cacheErr), gecho.Field("user_id", user.Id))
		}
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	return response, nil
}

// Register creates the account and returns the public user view. Tokens are
// only ever issued by Login; a fresh registration still has to log in.
func (as *AuthService) Register(ctx context.Context, registerRequest *structs.RegisterRequest) (*structs.UserView, error) {
	startTime := time.Now()

	exists, err := as.users.EmailExists(ctx, registerRequest.Email)
	if err != nil {
		as.logger.Error("Database error during registration", gecho.Field("error", err))
		return nil, err
	}
	if exists {
		as.logger.Warn("Registration failed - duplicate user", gecho.Field("email", registerRequest.Email))
		return nil, lib.ErrConflict
	}

	passwordHash, err := as.HashPassword(registerRequest.Password, DefaultParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user := &tables.User{
		Username:     registerRequest.Email,
		Email:        registerRequest.Email,
		PasswordHash: passwordHash,
		FirstName:    registerRequest.FirstName,
		LastName:     registerRequest.LastName,
	}
	user, err = as.users.CreateUser(ctx, user)
	if err != nil {
		// A concurrent registration can still lose the race on the unique index
		if errors.Is(err, lib.ErrConflict) {
			as.logger.Warn("Registration failed - duplicate user", gecho.Field("email", registerRequest.Email))
		} else {
			as.logger.Error("Database error during registration", gecho.Field("error", err))
		}
		return nil, err
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	view := UserViewOf(user)
	return &view, nil
}

func (as *AuthService) buildLoginResponse(user *tables.User) (*structs.LoginResponse, error) {
	accessToken, err := as.GenerateAccessToken(user)
	if err != nil {
		as.logger.Error("Failed to generate access token", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	refreshToken, err := as.GenerateRefreshToken(user)
	if err != nil {
		as.logger.Error("Failed to generate refresh token", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	return &structs.LoginResponse{
		UserView: UserViewOf(user),
		Access:   accessToken,
		Refresh:  refreshToken,
	}, nil
}

// HashPassword hashes a plain-text password and returns a string and possible error
func (as *AuthService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	params := fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	encoded := fmt.Sprintf("$argon2id$v=19$%s$%s$%s", params, b64Salt, b64Hash)
	return encoded, nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AuthService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	return lib.SecureCompare(hash, parts.Hash), nil
}

func (as *AuthService) signToken(user *tables.User, secret string, exp time.Time) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.Id.String(),
		"email": user.Email,
		"role":  user.Role(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"jti":   uuid.New().String(),
	})
	return token.SignedString([]byte(secret))
}

// GenerateAccessToken generates a JWT access token for the given user
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, error) {
	return as.signToken(user, as.cfg.Auth.AccessTokenSecret, as.GetAccessTokenExpiration())
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

// GenerateRefreshToken generates a JWT refresh token for the given user
func (as *AuthService) GenerateRefreshToken(user *tables.User) (string, error) {
	return as.signToken(user, as.cfg.Auth.RefreshTokenSecret, as.GetRefreshTokenExpiration())
}

// GetRefreshTokenExpiration returns the expiration time for refresh tokens
func (as *AuthService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

// RefreshTokens rotates a refresh token: the presented token's jti is
// blacklisted for its remaining lifetime and a fresh pair is issued.
func (as *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*structs.TokenPair, error) {
	claims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
	if err != nil {
		as.logger.Debug("Failed to parse refresh token", gecho.Field("error", err))
		return nil, lib.ErrInvalidToken
	}

	if time.Now().After(claims.Exp) {
		as.logger.Debug("Refresh token has expired", gecho.Field("exp", claims.Exp))
		return nil, lib.ErrExpiredToken
	}

	isBlacklisted, err := as.blacklist.IsTokenBlacklisted(ctx, claims.Jti.String())
	if err != nil {
		as.logger.Error("Failed to check if token is blacklisted", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return nil, err
	}
	if isBlacklisted {
		as.logger.Warn("Refresh token is blacklisted", gecho.Field("jti", claims.Jti))
		return nil, lib.ErrInvalidToken
	}

	user, err := as.GetUserByID(ctx, claims.Sub)
	if err != nil {
		as.logger.Error("Failed to get user by ID during token refresh", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		return nil, lib.ErrInvalidToken
	}

	newAccessToken, err := as.GenerateAccessToken(user)
	if err != nil {
		as.logger.Error("Failed to generate new access token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	newRefreshToken, err := as.GenerateRefreshToken(user)
	if err != nil {
		as.logger.Error("Failed to generate new refresh token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	if err := as.blacklist.BlacklistToken(ctx, claims.Jti.String(), time.Until(claims.Exp)); err != nil {
		as.logger.Error("Failed to blacklist rotated refresh token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return nil, err
	}

	return &structs.TokenPair{
		Access:  newAccessToken,
		Refresh: newRefreshToken,
	}, nil
}

func (as *AuthService) GetUserByID(ctx context.Context, userId uuid.UUID) (*tables.User, error) {
	if as.cache != nil {
		cachedUser, err := as.cache.GetUserFromCache(ctx, userId)
		if err != nil {
			as.logger.Warn("Failed to get user from cache", gecho.Field("error", err), gecho.Field("user_id", userId))
		} else if cachedUser != nil {
			as.logger.Debug("User retrieved from cache", gecho.Field("user_id", userId))
			return cachedUser, nil
		}
	}

	user, err := as.users.GetUserByID(ctx, userId)
	if err != nil {
		return nil, err
	}

	if as.cache != nil {
		go func() {
			if err := as.cache.SetUserInCache(context.Background(), user); err != nil {
				as.logger.Warn("Failed to cache user after DB fetch", gecho.Field("error", err), gecho.Field("user_id", userId))
			}
		}()
	}

	return user, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AuthService) GetRefreshTokenSecret() string {
	return as.cfg.Auth.RefreshTokenSecret
}

// EnsureAdminUser seeds the initial staff account from configuration. It is a
// no-op when the account already exists or the credentials are unset.
func (as *AuthService) EnsureAdminUser(ctx context.Context) error {
	admin := as.cfg.Admin
	if admin == nil || admin.Email == "" || admin.Password == "" {
		return nil
	}

	exists, err := as.users.EmailExists(ctx, admin.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	passwordHash, err := as.HashPassword(admin.Password, DefaultParams)
	if err != nil {
		return err
	}

	_, err = as.users.CreateUser(ctx, &tables.User{
		Username:     admin.Email,
		Email:        admin.Email,
		PasswordHash: passwordHash,
		IsStaff:      true,
	})
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			return nil
		}
		return err
	}

	as.logger.Info("Admin user created", gecho.Field("email", admin.Email))
	return nil
}
