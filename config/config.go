// Package config loads the club configuration from the environment.
//
// Values come, by increasing priority, from defaults, an optional
// configuration file named by CLUB_CONFIG, and CLUB_* environment variables.
// A .env file is loaded into the environment first, without overriding
// variables that are already set.
package config

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/club/advisor"
	"github.com/etnz/club/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CLUB"

// Config is the club configuration.
type Config struct {
	Store        store.Kind `mapstructure:"store"`
	StorePath    string     `mapstructure:"store_path"`
	RedisURL     string     `mapstructure:"redis_url"`
	RedisKey     string     `mapstructure:"redis_key"`
	GeminiAPIKey string     `mapstructure:"gemini_api_key"`
	Model        string     `mapstructure:"model"`
	LogLevel     string     `mapstructure:"log_level"`
	HTTPAddr     string     `mapstructure:"http_addr"`
	HistoryCron  string     `mapstructure:"history_cron"` // when `club serve` records the month end
}

// Default values.
const (
	DefaultStorePath   = "club.json"
	DefaultSQLitePath  = "club.db"
	DefaultRedisURL    = "redis://localhost:6379/0"
	DefaultHTTPAddr    = ":8080"
	DefaultHistoryCron = "55 23 28-31 * *" // the job skips days that are not a month end
)

// Load reads the configuration. envFiles are the .env files to load, ".env"
// if none. Missing .env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("store", string(store.KindFile))
	v.SetDefault("store_path", "")
	v.SetDefault("redis_url", DefaultRedisURL)
	v.SetDefault("redis_key", store.DefaultRedisKey)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("model", advisor.DefaultModel)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", DefaultHTTPAddr)
	v.SetDefault("history_cron", DefaultHistoryCron)
	// the API key also has its conventional names.
	if err := v.BindEnv("gemini_api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return Config{}, err
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Store = store.Kind(strings.ToLower(string(cfg.Store)))
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
		if cfg.Store == store.KindSQLite {
			cfg.StorePath = DefaultSQLitePath
		}
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

// StoreConfig returns the configuration of the store.
func (c Config) StoreConfig(log zerolog.Logger) store.Config {
	return store.Config{
		Kind:     c.Store,
		Path:     c.StorePath,
		RedisURL: c.RedisURL,
		RedisKey: c.RedisKey,
		Logger:   log,
	}
}

// Advisor returns the advisor, unconfigured without an API key.
func (c Config) Advisor(ctx context.Context, log zerolog.Logger) (*advisor.Advisor, error) {
	return advisor.NewGemini(ctx, c.GeminiAPIKey, c.Model, log)
}

// Logger returns a human readable logger writing to w.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}
