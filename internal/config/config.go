package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Admin     AdminConfig
	Console   ConsoleConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port string
	Mode string // gin mode: debug, release, test
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// AdminConfig holds the admin area credentials.
type AdminConfig struct {
	Username string
	Password string
}

// ConsoleConfig holds command palette settings.
type ConsoleConfig struct {
	InitialFocus bool          `mapstructure:"initial_focus"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
}

// AnalyticsConfig holds visitor tracking settings.
type AnalyticsConfig struct {
	Retention time.Duration
	Buffer    int
}

// Load reads an optional .env file, then spotlight.toml and the environment.
// Env var overrides use prefix SPOTLIGHT_. PORT is honored for the listen port.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.path", "spotlight.db")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("console.initial_focus", false)
	v.SetDefault("console.session_ttl", 30*time.Minute)
	v.SetDefault("analytics.retention", 365*24*time.Hour)
	v.SetDefault("analytics.buffer", 256)

	v.SetConfigType("toml")
	if path := os.Getenv("SPOTLIGHT_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("spotlight")
	}

	v.SetEnvPrefix("SPOTLIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SPOTLIGHT_SERVER_PORT") == "" {
		c.Server.Port = port
	}
	return c, nil
}

// UsingDefaultAdmin reports whether the admin credentials were left at their defaults.
func (c Config) UsingDefaultAdmin() bool {
	return c.Admin.Username == "admin" || c.Admin.Password == "admin123"
}
