package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"danstore_server/config"
	"danstore_server/structs"
	"danstore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// CacheService provides Redis caching functionality with connection pooling and retry logic
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. A missing key returns the
// empty string and no error.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(ctx, key).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// BlacklistToken adds a token's jti to the blacklist until it would have
// expired on its own.
func (cs *CacheService) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cs.config.Auth.BlacklistCacheTTL
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	return cs.Set(ctx, key, "true", ttl)
}

// IsTokenBlacklisted checks if a jti exists in the blacklist
func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", jti)
	val, err := cs.Get(ctx, key)
	if err != nil {
		return false, err
	}

	return val == "true", nil
}

// GetUserFromCache retrieves a user object from cache using userID
func (cs *CacheService) GetUserFromCache(ctx context.Context, userID uuid.UUID) (*tables.User, error) {
	key := fmt.Sprintf("user:%s", userID.String())
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	user := &tables.User{}
	err = json.Unmarshal([]byte(val), user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SetUserInCache stores a user object in cache with TTL
func (cs *CacheService) SetUserInCache(ctx context.Context, user *tables.User) error {
	if user == nil {
		return nil
	}
	key := fmt.Sprintf("user:%s", user.Id.String())
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return cs.Set(ctx, key, data, cs.config.Cache.UserCacheTTL)
}

// DeleteUserFromCache removes a user object from cache
func (cs *CacheService) DeleteUserFromCache(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("user:%s", userID.String())
	return cs.Delete(ctx, key)
}

// GetProductList retrieves a cached catalog listing keyed by its filters
func (cs *CacheService) GetProductList(ctx context.Context, filterKey string) ([]tables.Product, error) {
	key := fmt.Sprintf("products:list:%s", filterKey)

	products, err := getJSON[[]tables.Product](cs, ctx, key)
	if err != nil {
		cs.logger.Warn("Failed to get product list from cache", gecho.Field("error", err), gecho.Field("key", key))
		return nil, err
	}

	if products == nil {
		return nil, nil
	}

	return *products, nil
}

// SetProductList caches a catalog listing under its filter key
func (cs *CacheService) SetProductList(ctx context.Context, filterKey string, products []tables.Product) error {
	key := fmt.Sprintf("products:list:%s", filterKey)
	return setJSON(cs, ctx, key, products, 5*time.Minute)
}

// InvalidateProductCaches removes all catalog listing caches.
// Called whenever a product or category is written.
func (cs *CacheService) InvalidateProductCaches(ctx context.Context) error {
	return cs.DeletePattern(ctx, "products:list:*")
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	return cs.withRetry(func() error {
		var cursor uint64

		for {
			keys, nextCursor, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(keys) > 0 {
				if err := cs.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}

		return nil
	}, 3)
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.withRetry(func() error {
		return cs.client.Ping(ctx).Err()
	}, 3)
}

func setJSON[T any](cs *CacheService, ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

func getJSON[T any](cs *CacheService, ctx context.Context, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	err = json.Unmarshal([]byte(val), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
