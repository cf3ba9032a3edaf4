package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Auth     *AuthConfig
	Cache    *CacheConfig
	Email    *EmailConfig
	Checkout *CheckoutConfig
	Storage  *StorageConfig
	Admin    *AdminConfig
}

type ServerConfig struct {
	AppName        string        // DanStore
	Environment    string        // development, production
	Port           string        // :8080
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	Insecure       bool // disables TLS, local development only
	MaxConns       int
	MinConns       int
	MaxLifetime    time.Duration
	MaxIdleTime    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MigrationsPath string
}

type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	BlacklistCacheTTL  time.Duration
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	UserCacheTTL    time.Duration
}

type EmailConfig struct {
	ApiKey string
	From   string
}

// CheckoutConfig configures the payment-preference adapter. The access token
// always comes from the environment, never from source.
type CheckoutConfig struct {
	AccessToken         string
	BaseURL             string
	Currency            string
	SuccessURL          string
	FailureURL          string
	PendingURL          string
	StatementDescriptor string
	ExternalReference   string
	RequestTimeout      time.Duration
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// AdminConfig seeds the initial staff user at startup when both fields are set.
type AdminConfig struct {
	Email    string
	Password string
}
