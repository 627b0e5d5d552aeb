package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "RESTAURANT_API"

type Config struct {
	Server struct {
		Addr                 string        `mapstructure:"addr"`
		Mode                 string        `mapstructure:"mode"`
		ReadTimeout          time.Duration `mapstructure:"read_timeout"`
		WriteTimeout         time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout"`
		SlowRequestThreshold time.Duration `mapstructure:"slow_request_threshold"`
	} `mapstructure:"server"`

	Database struct {
		Driver          string        `mapstructure:"driver"`
		DSN             string        `mapstructure:"dsn"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	} `mapstructure:"database"`

	Redis struct {
		Enabled       bool          `mapstructure:"enabled"`
		URL           string        `mapstructure:"url"`
		PoolSize      int           `mapstructure:"pool_size"`
		RestaurantTTL time.Duration `mapstructure:"restaurant_ttl"`
	} `mapstructure:"redis"`

	Auth struct {
		JWTKey        string `mapstructure:"jwt_key"`
		JWTIssuer     string `mapstructure:"jwt_issuer"`
		JWTExpireDays int    `mapstructure:"jwt_expire_days"`
		BcryptCost    int    `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`

	Authz struct {
		Policies []PolicyConfig `mapstructure:"policies"`
	} `mapstructure:"authz"`

	Observability struct {
		TraceEnabled       bool    `mapstructure:"trace_enabled"`
		TracingEndpointURL string  `mapstructure:"tracing_endpoint_url"`
		TraceSampleRatio   float64 `mapstructure:"trace_sample_ratio"`
		LogLevel           string  `mapstructure:"log_level"`
		Format             string  `mapstructure:"log_format"`
		LogSource          bool    `mapstructure:"log_source"`
	} `mapstructure:"observability"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`

	Seed struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"seed"`
}

// PolicyConfig names a policy and the requirements it ANDs together.
type PolicyConfig struct {
	Name         string              `mapstructure:"name"`
	Requirements []RequirementConfig `mapstructure:"requirements"`
}

type RequirementConfig struct {
	Kind      string   `mapstructure:"kind"`
	Threshold int      `mapstructure:"threshold"`
	Operation string   `mapstructure:"operation"`
	ClaimType string   `mapstructure:"claim_type"`
	Values    []string `mapstructure:"values"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.slow_request_threshold", 4*time.Second)

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.restaurant_ttl", 5*time.Minute)

	v.SetDefault("auth.jwt_key", "")
	v.SetDefault("auth.jwt_issuer", "http://restaurantapi.com")
	v.SetDefault("auth.jwt_expire_days", 15)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("observability.trace_enabled", false)
	v.SetDefault("observability.tracing_endpoint_url", "")
	v.SetDefault("observability.trace_sample_ratio", 1.0)
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")

	v.SetDefault("seed.enabled", true)
}

// Load reads config.yaml from the given paths (./config and . when none are
// given), overlays config.$APP_ENV.yaml and then RESTAURANT_API_* variables.
// A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		slog.Default().Info("No config file found, using defaults and environment")
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.MergeInConfig(); err != nil {
			slog.Default().Info("No environment-specific config (optional)", slog.String("env", env))
		} else {
			slog.Default().Info("Environment-specific config loaded", slog.String("env", env))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Default().Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "memory":
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Auth.JWTKey == "" {
		return errors.New("auth.jwt_key is required")
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		return errors.New("redis.url is required when redis is enabled")
	}
	return nil
}
