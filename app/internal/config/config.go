package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogEmbedded = "embedded"
	CatalogMySQL    = "mysql"
	CatalogPostgres = "postgres"
)

type Config struct {
	Port string
	Env  string // development or production

	CatalogSource string
	MySQLDSN      string
	PGDSN         string

	SessionSecret string
	SessionTTL    time.Duration

	MessagingLinkBase string
	RememberBranch    bool
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "2h"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	remember, err := strconv.ParseBool(getenv("CHECKOUT_REMEMBER_BRANCH", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("CHECKOUT_REMEMBER_BRANCH: %w", err)
	}

	cfg := Config{
		Port:              getenv("APP_PORT", "8080"),
		Env:               getenv("APP_ENV", "development"),
		CatalogSource:     getenv("CATALOG_SOURCE", CatalogEmbedded),
		MySQLDSN:          os.Getenv("MYSQL_DSN"),
		PGDSN:             os.Getenv("PG_DSN"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionTTL:        ttl,
		MessagingLinkBase: getenv("MESSAGING_LINK_BASE", "whatsapp://send"),
		RememberBranch:    remember,
	}

	switch cfg.CatalogSource {
	case CatalogEmbedded:
	case CatalogMySQL:
		if cfg.MySQLDSN == "" {
			return Config{}, fmt.Errorf("MYSQL_DSN is required for CATALOG_SOURCE=%s", cfg.CatalogSource)
		}
	case CatalogPostgres:
		if cfg.PGDSN == "" {
			return Config{}, fmt.Errorf("PG_DSN is required for CATALOG_SOURCE=%s", cfg.CatalogSource)
		}
	default:
		return Config{}, fmt.Errorf("CATALOG_SOURCE %q is not supported", cfg.CatalogSource)
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("SESSION_SECRET is required")
		}
		cfg.SessionSecret = "dev_secret_change_me"
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
