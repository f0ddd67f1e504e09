package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret      string
	AccessTTL         string
	BootstrapUsername string
	BootstrapPassword string
}

type ListingConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Listing     ListingConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret:      v.GetString("JWT_ACCESS_SECRET"),
			AccessTTL:         v.GetString("JWT_ACCESS_TTL"),
			BootstrapUsername: v.GetString("ADMIN_USERNAME"),
			BootstrapPassword: v.GetString("ADMIN_PASSWORD"),
		},
		Listing: ListingConfig{
			DefaultPageSize: v.GetInt("LISTING_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("LISTING_MAX_PAGE_SIZE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "sqlite"
	}
	if cfg.Auth.AccessTTL == "" {
		cfg.Auth.AccessTTL = "12h"
	}
	if cfg.Auth.BootstrapUsername == "" {
		cfg.Auth.BootstrapUsername = "admin"
	}
	if cfg.Listing.DefaultPageSize == 0 {
		cfg.Listing.DefaultPageSize = 20
	}
	if cfg.Listing.MaxPageSize == 0 {
		cfg.Listing.MaxPageSize = 200
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch strings.ToLower(cfg.DB.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Listing.DefaultPageSize > cfg.Listing.MaxPageSize {
		return fmt.Errorf("LISTING_DEFAULT_PAGE_SIZE exceeds LISTING_MAX_PAGE_SIZE")
	}
	return nil
}
