package config

import (
	"danstore_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "DanStore"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8000"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:           getEnvAsString("DB_HOST", "localhost"),
				Port:           getEnvAsInt("DB_PORT", 5432),
				User:           getEnvAsString("DB_USER", "postgres"),
				Password:       getEnvAsString("DB_PASSWORD", "password"),
				Name:           getEnvAsString("DB_NAME", "danstore_db"),
				Insecure:       getEnvAsBool("DB_INSECURE", true),
				MaxConns:       getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:       getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:    getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:    getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:    getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
				MigrationsPath: getEnvAsString("DB_MIGRATIONS_PATH", "migrations"),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret:  getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry:  getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 24*time.Hour),
				RefreshTokenSecret: getEnvAsString("AUTH_REFRESH_TOKEN_SECRET", "default_refresh_secret"),
				RefreshTokenExpiry: getEnvAsTimeDuration("AUTH_REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
				BlacklistCacheTTL:  getEnvAsTimeDuration("AUTH_BLACKLIST_CACHE_TTL", 7*24*time.Hour),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
				UserCacheTTL:    getEnvAsTimeDuration("REDIS_USER_CACHE_TTL", 15*time.Minute),
			},
			Email: &structs.EmailConfig{
				ApiKey: getEnvAsString("RESEND_API_KEY", ""),
				From:   getEnvAsString("EMAIL_FROM", "DAN STORE <onboarding@resend.dev>"),
			},
			Checkout: &structs.CheckoutConfig{
				AccessToken:         getEnvAsString("MP_ACCESS_TOKEN", ""),
				BaseURL:             getEnvAsString("MP_BASE_URL", "https://api.mercadopago.com"),
				Currency:            getEnvAsString("MP_CURRENCY", "PEN"),
				SuccessURL:          getEnvAsString("MP_SUCCESS_URL", "http://localhost:5173/success"),
				FailureURL:          getEnvAsString("MP_FAILURE_URL", "http://localhost:5173/failure"),
				PendingURL:          getEnvAsString("MP_PENDING_URL", "http://localhost:5173/pending"),
				StatementDescriptor: getEnvAsString("MP_STATEMENT_DESCRIPTOR", "DAN STORE"),
				ExternalReference:   getEnvAsString("MP_EXTERNAL_REFERENCE", "PRUEBA-001"),
				RequestTimeout:      getEnvAsTimeDuration("MP_REQUEST_TIMEOUT", 10*time.Second),
			},
			Storage: &structs.StorageConfig{
				Endpoint:      getEnvAsString("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey:     getEnvAsString("MINIO_ACCESS_KEY", ""),
				SecretKey:     getEnvAsString("MINIO_SECRET_KEY", ""),
				Bucket:        getEnvAsString("MINIO_BUCKET", "danstore-images"),
				UseSSL:        getEnvAsBool("MINIO_USE_SSL", false),
				PublicBaseURL: getEnvAsString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
			},
			Admin: &structs.AdminConfig{
				Email:    getEnvAsString("ADMIN_EMAIL", ""),
				Password: getEnvAsString("ADMIN_PASSWORD", ""),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
