package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Sweep.MarkFailedAsSent)
	assert.False(t, cfg.Sweep.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	RegisterTestingT(t)

	cfg, err := Load("")

	Expect(err).To(BeNil())
	Expect(cfg.App.Name).To(Equal("reminders"))
	Expect(cfg.Redis.Addr).To(Equal("localhost:6379"))
	Expect(cfg.RateLimit.Window).To(Equal(time.Minute))
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("PORT", "9000")
	t.Setenv("REMINDERS_REDIS_ADDR", "redis:6380")
	t.Setenv("REMINDERS_STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://docs.example.com/, https://example.com")
	t.Setenv("DOCS_URL", "https://api.example.com")
	t.Setenv("REMINDERS_SWEEP_ENABLED", "true")
	t.Setenv("REMINDERS_SWEEP_INTERVAL", "30s")
	t.Setenv("REMINDERS_SWEEP_MARK_FAILED_AS_SENT", "false")

	cfg, err := Load("")

	Expect(err).To(BeNil())
	Expect(cfg.Server.Port).To(Equal(9000))
	Expect(cfg.Redis.Addr).To(Equal("redis:6380"))
	Expect(cfg.Store.Driver).To(Equal(StoreDriverMemory))
	Expect(cfg.CORS.AllowedOrigins).To(Equal([]string{"https://docs.example.com", "https://example.com"}))
	Expect(cfg.API.BaseURL).To(Equal("https://api.example.com"))
	Expect(cfg.Sweep.Enabled).To(BeTrue())
	Expect(cfg.Sweep.Interval).To(Equal(30 * time.Second))
	Expect(cfg.Sweep.MarkFailedAsSent).To(BeFalse())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reminders.yaml")

	content := []byte("server:\n  port: 7070\nrate_limit:\n  requests: 5\n  window: 10s\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("should reject unknown store driver", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Store.Driver = "dynamo"
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject invalid port", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject empty CORS origins", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.CORS.AllowedOrigins = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject enabled sweep without interval", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Sweep.Enabled = true
		cfg.Sweep.Interval = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("should not require redis address for memory store", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Store.Driver = StoreDriverMemory
		cfg.Redis.Addr = ""
		assert.NoError(t, cfg.Validate())
	})
}
