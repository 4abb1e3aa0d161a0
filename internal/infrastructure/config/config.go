package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	OTLP     OTLPConfig
	Storage  StorageConfig
	Shop     ShopConfig
	Checkout CheckoutConfig
	LogLevel string
}

type ServerConfig struct {
	Port string
	Host string
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

type StorageConfig struct {
	// Driver is one of "memory", "file" or "sqlite".
	Driver string
	Path   string
	Key    string
}

type ShopConfig struct {
	// CatalogPath points to a YAML or JSON catalog. Empty uses the built-in one.
	CatalogPath string
}

type CheckoutConfig struct {
	BaseURL string
	// Timeout of zero leaves the request bounded only by its context.
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		OTLP: OTLPConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "simple-shop"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
			Path:   getEnv("STORAGE_PATH", ".shop"),
			Key:    getEnv("STORAGE_KEY", "simple_shop_cart_v1"),
		},
		Shop: ShopConfig{
			CatalogPath: getEnv("CATALOG_PATH", ""),
		},
		Checkout: CheckoutConfig{
			BaseURL: strings.TrimRight(getEnv("CHECKOUT_API_BASE", "http://localhost:8787"), "/"),
			Timeout: getEnvDuration("CHECKOUT_TIMEOUT", 0),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
