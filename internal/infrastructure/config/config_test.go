package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "OTEL_ENABLED", "STORAGE_DRIVER", "STORAGE_PATH",
		"STORAGE_KEY", "CATALOG_PATH", "CHECKOUT_API_BASE", "CHECKOUT_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	chdir(t, t.TempDir())

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.OTLP.Enabled)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "simple_shop_cart_v1", cfg.Storage.Key)
	assert.Equal(t, "", cfg.Shop.CatalogPath)
	assert.Equal(t, "http://localhost:8787", cfg.Checkout.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Checkout.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("STORAGE_KEY", "custom_key")
	t.Setenv("CHECKOUT_API_BASE", "https://pay.example.com/")
	t.Setenv("CHECKOUT_TIMEOUT", "15s")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "custom_key", cfg.Storage.Key)
	assert.Equal(t, "https://pay.example.com", cfg.Checkout.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Checkout.Timeout)
	assert.True(t, cfg.OTLP.Enabled)
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.True(t, getEnvBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getEnvDuration("X_DUR", time.Minute))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
