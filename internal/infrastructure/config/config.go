package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Credential store backends understood by the client.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ClientConfig configures the marketplace CLI.
type ClientConfig struct {
	APIURL            string        `env:"MARKETPLACE_API_URL,        default=http://localhost:8080"`
	CredentialBackend string        `env:"MARKETPLACE_CREDENTIAL_BACKEND, default=file"`
	CredentialPath    string        `env:"MARKETPLACE_CREDENTIAL_PATH"`
	CredentialKey     string        `env:"MARKETPLACE_CREDENTIAL_KEY, default=token"`
	HTTPTimeout       time.Duration `env:"MARKETPLACE_HTTP_TIMEOUT,   default=15s"`
	LogLevel          string        `env:"LOG_LEVEL,                  default=warn"`
	LogPretty         bool          `env:"LOG_PRETTY,                 default=true"`

	Redis RedisConfig
}

// APIConfig configures the stub REST API.
type APIConfig struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo MongoConfig
}

type MongoConfig struct {
	// URI left empty keeps users in memory.
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LoadClient reads the client configuration from the environment.
func LoadClient(ctx context.Context) (*ClientConfig, error) {
	return LoadClientWith(ctx, envconfig.OsLookuper())
}

// LoadClientWith reads the client configuration through l.
func LoadClientWith(ctx context.Context, l envconfig.Lookuper) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: load client configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no sensible fallback.
func (c *ClientConfig) Validate() error {
	switch c.CredentialBackend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("config: unknown credential backend %q (want file, redis or memory)", c.CredentialBackend)
	}
	if c.APIURL == "" {
		return fmt.Errorf("config: MARKETPLACE_API_URL must not be empty")
	}
	return nil
}

// ResolveCredentialPath returns CredentialPath, defaulting to
// $HOME/.marketplace/<key>.
func (c *ClientConfig) ResolveCredentialPath() (string, error) {
	if c.CredentialPath != "" {
		return c.CredentialPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locate home directory: %w", err)
	}
	return filepath.Join(home, ".marketplace", c.CredentialKey), nil
}

// LoadAPI reads the stub API configuration from the environment.
func LoadAPI(ctx context.Context) (*APIConfig, error) {
	return LoadAPIWith(ctx, envconfig.OsLookuper())
}

// LoadAPIWith reads the stub API configuration through l.
func LoadAPIWith(ctx context.Context, l envconfig.Lookuper) (*APIConfig, error) {
	var cfg APIConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: load api configuration: %w", err)
	}
	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set in production")
	}
	return &cfg, nil
}
