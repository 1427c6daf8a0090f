package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultDatabaseURL is a SQLite file in the working directory.
	DefaultDatabaseURL = "tasks-management.db"
	// DefaultJWTSecret is only suitable for local development.
	DefaultJWTSecret = "development-insecure-secret-change-me"
)

// Config holds process-wide settings read once at startup.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	TokenTTL       time.Duration
	Port           string
	GinMode        string
	LogDevelopment bool
	Location       *time.Location
}

// Load reads config.yml (optional) and the environment. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("jwt_issuer", "team-task-api")
	v.SetDefault("jwt_audience", "team-task-clients")
	v.SetDefault("token_ttl", time.Hour)
	v.SetDefault("port", "8008")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_development", true)
	v.SetDefault("timezone", "Local")

	v.AutomaticEnv()
	// MONGO_URI is accepted as an alias of DATABASE_URL.
	if err := v.BindEnv("database_url", "DATABASE_URL", "MONGO_URI"); err != nil {
		return nil, fmt.Errorf("bind database_url: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config.yml: %w", err)
		}
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", v.GetString("timezone"), err)
	}

	ttl := v.GetDuration("token_ttl")
	if ttl <= 0 {
		return nil, fmt.Errorf("token_ttl must be positive, got %s", ttl)
	}

	return &Config{
		DatabaseURL:    v.GetString("database_url"),
		JWTSecret:      v.GetString("jwt_secret"),
		JWTIssuer:      v.GetString("jwt_issuer"),
		JWTAudience:    v.GetString("jwt_audience"),
		TokenTTL:       ttl,
		Port:           v.GetString("port"),
		GinMode:        v.GetString("gin_mode"),
		LogDevelopment: v.GetBool("log_development"),
		Location:       loc,
	}, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// UsesDefaultSecret reports whether the token secret was left at its development default.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
