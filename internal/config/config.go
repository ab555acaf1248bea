package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is read once at process start and never mutated afterwards.
type Config struct {
	Port              int           `yaml:"port"`
	Version           string        `yaml:"version"`
	Environment       string        `yaml:"environment"`
	Mode              string        `yaml:"mode"`
	AppName           string        `yaml:"app_name"`
	MetricsEnabled    bool          `yaml:"metrics_enabled"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	StartTime time.Time `yaml:"-"`
}

// Defaults returns a Config with default values and StartTime set to now.
func Defaults() Config {
	return Config{
		Port:              3000,
		Version:           "v1.0.0",
		Environment:       "development",
		Mode:              "development",
		AppName:           "sample-app",
		MetricsEnabled:    true,
		ReadHeaderTimeout: 2 * time.Second,
		StartTime:         time.Now(),
	}
}

// LoadFromEnv builds the config from defaults, an optional YAML file named
// by CONFIG_FILE, and environment variables, in that order of precedence.
func LoadFromEnv() (Config, error) {
	cfg := Defaults()

	if path := env("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Port = envInt("PORT", cfg.Port)
	cfg.Version = env("APP_VERSION", cfg.Version)
	cfg.Environment = env("ENVIRONMENT", cfg.Environment)
	// NODE_ENV is still honoured so existing manifests keep working.
	cfg.Mode = env("APP_ENV", env("NODE_ENV", cfg.Mode))
	cfg.AppName = env("APP_NAME", cfg.AppName)
	cfg.MetricsEnabled = envBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.ReadHeaderTimeout = envDuration("READ_HEADER_TIMEOUT", cfg.ReadHeaderTimeout)
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version must not be empty")
	}
	return nil
}

// ListenAddr is the address the server binds on all interfaces.
func (c Config) ListenAddr() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(c.Port))
}

// IsProduction reports whether raw error text must be hidden from clients.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Mode, "production")
}

func env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
