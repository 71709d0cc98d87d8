package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	FirebaseStorageBucket            string `mapstructure:"FIREBASE_STORAGE_BUCKET"`

	// ClientURL restricts CORS to a single origin. Empty allows every origin.
	ClientURL string `mapstructure:"CLIENT_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	OpenDataBaseURL           string        `mapstructure:"OPEN_DATA_BASE_URL"`
	OpenDataCitiesResourceID  string        `mapstructure:"OPEN_DATA_CITIES_RESOURCE_ID"`
	OpenDataStreetsResourceID string        `mapstructure:"OPEN_DATA_STREETS_RESOURCE_ID"`
	OpenDataCitiesLimit       int           `mapstructure:"OPEN_DATA_CITIES_LIMIT"`
	OpenDataStreetsLimit      int           `mapstructure:"OPEN_DATA_STREETS_LIMIT"`
	OpenDataTimeout           time.Duration `mapstructure:"OPEN_DATA_TIMEOUT"`
	OpenDataCacheTTL          time.Duration `mapstructure:"OPEN_DATA_CACHE_TTL"`

	ExposeErrorDetails bool          `mapstructure:"EXPOSE_ERROR_DETAILS"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var keys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL",
	"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "FIREBASE_STORAGE_BUCKET",
	"CLIENT_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"OPEN_DATA_BASE_URL", "OPEN_DATA_CITIES_RESOURCE_ID", "OPEN_DATA_STREETS_RESOURCE_ID",
	"OPEN_DATA_CITIES_LIMIT", "OPEN_DATA_STREETS_LIMIT", "OPEN_DATA_TIMEOUT", "OPEN_DATA_CACHE_TTL",
	"EXPOSE_ERROR_DETAILS", "SHUTDOWN_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("OPEN_DATA_BASE_URL", "https://data.gov.il/api/3/action/datastore_search")
	v.SetDefault("OPEN_DATA_CITIES_RESOURCE_ID", "8f714b6f-c35c-4b40-a0e7-547b675eee0e")
	v.SetDefault("OPEN_DATA_STREETS_RESOURCE_ID", "a7296d1a-f8c9-4b70-96c2-6ebb4352f8e3")
	v.SetDefault("OPEN_DATA_CITIES_LIMIT", 2000)
	v.SetDefault("OPEN_DATA_STREETS_LIMIT", 10000)
	v.SetDefault("OPEN_DATA_TIMEOUT", 15*time.Second)
	v.SetDefault("OPEN_DATA_CACHE_TTL", 12*time.Hour)
	v.SetDefault("EXPOSE_ERROR_DETAILS", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// LoadConfig reads configuration from the environment and, when CONFIG_FILE
// is set, from that file. Environment variables win over file values.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.BindEnv("CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("bind env CONFIG_FILE: %w", err)
	}
	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.FirebaseStorageBucket == "" {
		return errors.New("FIREBASE_STORAGE_BUCKET is required")
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.OpenDataBaseURL == "" {
		return errors.New("OPEN_DATA_BASE_URL must not be empty")
	}
	if c.OpenDataTimeout <= 0 {
		return errors.New("OPEN_DATA_TIMEOUT must be positive")
	}
	if c.OpenDataCacheTTL < 0 {
		return errors.New("OPEN_DATA_CACHE_TTL must not be negative")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
