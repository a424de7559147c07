package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisURL    string
	CORSOrigins string

	// SheetsWebhookURL receives one row per created order. Empty disables the export.
	SheetsWebhookURL string

	// SKUFallbackPrefix is used when a product has no usable category name.
	SKUFallbackPrefix string

	Storage StorageConfig
	Admin   AdminConfig
}

// AdminConfig is the owner account created on first start.
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

// StorageConfig points at an S3-compatible bucket holding product images.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the prefix under which objects are publicly readable,
	// e.g. https://<project>.supabase.co/storage/v1/object/public/<bucket>.
	PublicURL string
}

func Load() Config {
	return Config{
		Env:               getenv("APP_ENV", "development"),
		Port:              getenv("PORT", "3000"),
		DatabaseURL:       databaseURL(),
		JWTSecret:         getenv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		RedisURL:          getenv("REDIS_URL", ""),
		CORSOrigins:       getenv("CORS_ORIGINS", "*"),
		SheetsWebhookURL:  getenv("SHEETS_WEBHOOK_URL", ""),
		SKUFallbackPrefix: getenv("SKU_FALLBACK_PREFIX", "PRD"),
		Storage: StorageConfig{
			Endpoint:  getenv("STORAGE_ENDPOINT", ""),
			AccessKey: getenv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getenv("STORAGE_SECRET_KEY", ""),
			Bucket:    getenv("STORAGE_BUCKET", "product-images"),
			UseSSL:    getenvBool("STORAGE_USE_SSL", true),
			PublicURL: strings.TrimRight(getenv("STORAGE_PUBLIC_URL", ""), "/"),
		},
		Admin: AdminConfig{
			Email:    getenv("ADMIN_EMAIL", "admin@example.com"),
			Password: getenv("ADMIN_PASSWORD", "admin123"),
			FullName: getenv("ADMIN_NAME", "Owner"),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from DB_* parts.
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Bangkok",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_NAME", "postgres"),
		getenv("DB_PORT", "5432"),
		getenv("DB_SSLMODE", "disable"),
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
