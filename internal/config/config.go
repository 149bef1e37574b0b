// Package config loads the dashboard configuration from .env, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultConfigFile = "config.yaml"
	DefaultAddr       = ":8080"
	DefaultCacheTTL   = 5 * time.Minute
	DefaultNamespace  = "quotes"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	AlphaVantage struct {
		APIKey     string        `yaml:"api_key"`
		BaseURL    string        `yaml:"base_url"`
		OutputSize string        `yaml:"output_size"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"alphavantage"`
	Cache struct {
		TTL       time.Duration `yaml:"ttl"`
		Namespace string        `yaml:"namespace"`
	} `yaml:"cache"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
	} `yaml:"rate_limit"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config in this order, later sources winning:
// .env (never overriding the real environment), the YAML file, environment variables, defaults.
// An empty path means $CONFIG_FILE or config.yaml. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .envを読み込む
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "SERVER_ADDR")
	setString(&c.AlphaVantage.APIKey, "ALPHAVANTAGE_API_KEY")
	setString(&c.AlphaVantage.BaseURL, "ALPHAVANTAGE_BASE_URL")
	setString(&c.AlphaVantage.OutputSize, "ALPHAVANTAGE_OUTPUT_SIZE")
	setString(&c.Cache.Namespace, "CACHE_NAMESPACE")
	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if err := setDuration(&c.AlphaVantage.Timeout, "ALPHAVANTAGE_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.Cache.TTL, "CACHE_TTL"); err != nil {
		return err
	}
	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	return setInt(&c.RateLimit.PerMinute, "RATE_LIMIT_PER_MINUTE")
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Namespace == "" {
		c.Cache.Namespace = DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.AlphaVantage.APIKey == "" {
		return errors.New("alphavantage.api_key is required (set ALPHAVANTAGE_API_KEY)")
	}
	if c.AlphaVantage.Timeout < 0 {
		return errors.New("alphavantage.timeout must not be negative")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.RateLimit.PerMinute < 0 {
		return errors.New("rate_limit.per_minute must not be negative")
	}
	return nil
}

// LogValue hides the secrets when the config is logged.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", c.Server.Addr),
		slog.String("alphavantage_base_url", c.AlphaVantage.BaseURL),
		slog.Bool("alphavantage_api_key_set", c.AlphaVantage.APIKey != ""),
		slog.Duration("cache_ttl", c.Cache.TTL),
		slog.String("redis_host", c.Redis.Host),
		slog.Int("rate_limit_per_minute", c.RateLimit.PerMinute),
		slog.String("log_level", c.Log.Level),
	)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
