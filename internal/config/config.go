// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Shipping policy. The cart checkout path uses the free-shipping
	// threshold with a flat fee below it; manual and landing orders use
	// fixed per-zone fees.
	FreeShippingThreshold int
	FlatShippingFee       int
	ZoneFeeInsideDhaka    int
	ZoneFeeOutsideDhaka   int

	// Courier provider credentials. A provider with empty credentials is
	// simply not registered.
	ActiveCourier      string // "steadfast", "pathao", "redx", "paperfly"
	SteadfastAPIKey    string
	SteadfastSecret    string
	SteadfastBaseURL   string
	PathaoClientID     string
	PathaoClientSecret string
	PathaoUsername     string
	PathaoPassword     string
	PathaoBaseURL      string
	RedXToken          string
	RedXBaseURL        string
	PaperflyUser       string
	PaperflyPassword   string
	PaperflyBaseURL    string

	// BD Courier delivery-history lookup
	BDCourierAPIKey  string
	BDCourierBaseURL string

	// SMS gateway (BulkSMSBD-compatible)
	SMSAPIKey   string
	SMSSenderID string
	SMSBaseURL  string

	// Kafka order events (optional — publisher disabled when empty)
	KafkaBrokers string

	// S3-compatible object storage for product/banner media (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Headless Chromium for invoice PDF rendering (optional)
	ChromePath string

	SiteName string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file is honoured when present.
// Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	// Best effort — a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "bonik"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "bonik"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		FreeShippingThreshold: envInt("FREE_SHIPPING_THRESHOLD", 2000),
		FlatShippingFee:       envInt("FLAT_SHIPPING_FEE", 100),
		ZoneFeeInsideDhaka:    envInt("ZONE_FEE_INSIDE_DHAKA", 80),
		ZoneFeeOutsideDhaka:   envInt("ZONE_FEE_OUTSIDE_DHAKA", 130),

		ActiveCourier:      envOrDefault("ACTIVE_COURIER", "steadfast"),
		SteadfastAPIKey:    os.Getenv("STEADFAST_API_KEY"),
		SteadfastSecret:    os.Getenv("STEADFAST_SECRET_KEY"),
		SteadfastBaseURL:   os.Getenv("STEADFAST_BASE_URL"),
		PathaoClientID:     os.Getenv("PATHAO_CLIENT_ID"),
		PathaoClientSecret: os.Getenv("PATHAO_CLIENT_SECRET"),
		PathaoUsername:     os.Getenv("PATHAO_USERNAME"),
		PathaoPassword:     os.Getenv("PATHAO_PASSWORD"),
		PathaoBaseURL:      os.Getenv("PATHAO_BASE_URL"),
		RedXToken:          os.Getenv("REDX_ACCESS_TOKEN"),
		RedXBaseURL:        os.Getenv("REDX_BASE_URL"),
		PaperflyUser:       os.Getenv("PAPERFLY_USERNAME"),
		PaperflyPassword:   os.Getenv("PAPERFLY_PASSWORD"),
		PaperflyBaseURL:    os.Getenv("PAPERFLY_BASE_URL"),

		BDCourierAPIKey:  os.Getenv("BDCOURIER_API_KEY"),
		BDCourierBaseURL: os.Getenv("BDCOURIER_BASE_URL"),

		SMSAPIKey:   os.Getenv("SMS_API_KEY"),
		SMSSenderID: os.Getenv("SMS_SENDER_ID"),
		SMSBaseURL:  os.Getenv("SMS_BASE_URL"),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "auto"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "bonik-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		ChromePath: os.Getenv("CHROME_PATH"),

		SiteName: envOrDefault("SITE_NAME", "Bonik"),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads an integer environment variable, returning a fallback if
// unset or not a valid number.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
