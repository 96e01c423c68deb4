package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverRedis  = "redis"
	StoreDriverMemory = "memory"
)

type AppConfig struct {
	App       ServiceConfig   `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	API       APIConfig       `mapstructure:"api"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Sweep     SweepConfig     `mapstructure:"sweep"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CORSConfig holds the allow-listed origins. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// APIConfig is the public base URL the docs UI uses to reach this API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type SweepConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	Interval         time.Duration `mapstructure:"interval"`
	MarkFailedAsSent bool          `mapstructure:"mark_failed_as_sent"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	LokiURL string `mapstructure:"loki_url"`
}

type TelemetryConfig struct {
	MetricsPort  string `mapstructure:"metrics_port"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		App: ServiceConfig{
			Name:        "reminders",
			Version:     "1.0.0",
			Environment: "development",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreDriverRedis,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 60,
			Window:   time.Minute,
		},
		Sweep: SweepConfig{
			Enabled:          false,
			Interval:         time.Minute,
			MarkFailedAsSent: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			MetricsPort: "9091",
		},
	}
}

// Load reads defaults, then an optional config file, then .env and the
// environment. Keys map to REMINDERS_<SECTION>_<KEY>, e.g. REMINDERS_REDIS_ADDR.
func Load(configPath string) (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, GetDefaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("REMINDERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.version", d.App.Version)
	v.SetDefault("app.environment", d.App.Environment)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("store.driver", d.Store.Driver)

	v.SetDefault("redis.url", d.Redis.URL)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)

	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("api.base_url", d.API.BaseURL)

	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.requests", d.RateLimit.Requests)
	v.SetDefault("rate_limit.window", d.RateLimit.Window)

	v.SetDefault("sweep.enabled", d.Sweep.Enabled)
	v.SetDefault("sweep.interval", d.Sweep.Interval)
	v.SetDefault("sweep.mark_failed_as_sent", d.Sweep.MarkFailedAsSent)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.loki_url", d.Logging.LokiURL)

	v.SetDefault("telemetry.metrics_port", d.Telemetry.MetricsPort)
	v.SetDefault("telemetry.otlp_endpoint", d.Telemetry.OTLPEndpoint)
}

// bindEnvVars adds the unprefixed names deployments commonly set.
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "REMINDERS_SERVER_PORT", "PORT")
	v.BindEnv("redis.url", "REMINDERS_REDIS_URL", "REDIS_URL")
	v.BindEnv("cors.allowed_origins", "REMINDERS_CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("api.base_url", "REMINDERS_API_BASE_URL", "DOCS_URL")
	v.BindEnv("logging.level", "REMINDERS_LOGGING_LEVEL", "LOG_LEVEL")
	v.BindEnv("telemetry.otlp_endpoint", "REMINDERS_TELEMETRY_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func splitOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))

	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			part = strings.TrimRight(strings.TrimSpace(part), "/")
			if part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	switch c.Store.Driver {
	case StoreDriverRedis:
		if c.Redis.URL == "" && c.Redis.Addr == "" {
			return fmt.Errorf("redis url or addr is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit requests and window must be positive")
	}

	if c.Sweep.Enabled && c.Sweep.Interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.Sweep.Interval)
	}

	return nil
}

func (c *AppConfig) IsProduction() bool {
	return c.App.Environment == "production"
}
