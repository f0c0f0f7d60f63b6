package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const AVATAR_SIZE = 64

type StoreKind string

const (
	StoreMySQL  StoreKind = "mysql"
	StoreMemory StoreKind = "memory"
)

type Config struct {
	Port      string   `env:"PORT" envDefault:"8080"`
	GinMode   string   `env:"GIN_MODE" envDefault:"debug"`
	FEOrigins []string `env:"FE_ORIGINS" envSeparator:";"`

	Store      StoreKind `env:"STORE" envDefault:"mysql"`
	DBUser     string    `env:"DB_USER"`
	DBPass     string    `env:"DB_PASS"`
	DBHost     string    `env:"DB_HOST"`
	DBName     string    `env:"DB_NAME" envDefault:"yatube"`
	DBMaxConns int       `env:"DB_MAX_CONNS" envDefault:"50"`
	DBTLS      bool      `env:"DB_TLS" envDefault:"true"`

	UploadsBucket string `env:"UPLOADS_BUCKET"`

	// public web config of the Firebase project, used by the login page
	FirebaseAPIKey     string `env:"FIREBASE_API_KEY"`
	FirebaseAuthDomain string `env:"FIREBASE_AUTH_DOMAIN"`
	FirebaseProjectID  string `env:"FIREBASE_PROJECT_ID"`

	PageSize      int           `env:"PAGE_SIZE" envDefault:"10"`
	IndexCacheTTL time.Duration `env:"INDEX_CACHE_TTL" envDefault:"3s"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"120h"`
}

// Parse loads the configuration from environment variables.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %v", c.PageSize)
	}
	switch c.Store {
	case StoreMemory:
	case StoreMySQL:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST must be set when STORE=%v", StoreMySQL)
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}
