package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Stores         StoresConfig         `mapstructure:"stores"`
	Offline        OfflineConfig        `mapstructure:"offline"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// StoresConfig points at the external collaborator services: the event
// store that records user interactions and the feature store that serves
// item-to-item similarity lookups.
type StoresConfig struct {
	EventsURL   string        `mapstructure:"events_url"`
	FeaturesURL string        `mapstructure:"features_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// OfflineConfig locates the parquet snapshots loaded once at startup.
type OfflineConfig struct {
	PersonalPath string `mapstructure:"personal_path"`
	DefaultPath  string `mapstructure:"default_path"`
}

type RecommendationConfig struct {
	DefaultK    int `mapstructure:"default_k"`
	HistorySize int `mapstructure:"history_size"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	RedisURL string        `mapstructure:"redis_url"`
	Limit    int           `mapstructure:"limit"`
	Window   time.Duration `mapstructure:"window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.mode", "development")

	// Collaborator store defaults
	viper.SetDefault("stores.events_url", "http://127.0.0.1:8020")
	viper.SetDefault("stores.features_url", "http://127.0.0.1:8010")
	viper.SetDefault("stores.timeout", "5s")

	// Offline snapshot defaults
	viper.SetDefault("offline.personal_path", "./recommendations/recommendations.parquet")
	viper.SetDefault("offline.default_path", "./recommendations/top_popular.parquet")

	// Recommendation defaults
	viper.SetDefault("recommendation.default_k", 100)
	viper.SetDefault("recommendation.history_size", 3)

	// Rate limit defaults
	viper.SetDefault("rate_limit.enabled", false)
	viper.SetDefault("rate_limit.redis_url", "redis://localhost:6379/0")
	viper.SetDefault("rate_limit.limit", 1000)
	viper.SetDefault("rate_limit.window", "1h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
