// Package config loads the likes service configuration from files and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tair/article-likes/pkg/database"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds every setting of the likes service
type Config struct {
	Env         string `mapstructure:"APP_ENV"`
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	HTTPPort string `mapstructure:"HTTP_PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`

	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`

	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	LookupCacheTTL time.Duration `mapstructure:"LOOKUP_CACHE_TTL"`

	ArticleServiceURL string `mapstructure:"ARTICLE_SERVICE_URL"`
	UserServiceURL    string `mapstructure:"USER_SERVICE_URL"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	MaxPageSize    int    `mapstructure:"MAX_PAGE_SIZE"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	JaegerEndpoint string `mapstructure:"JAEGER_ENDPOINT"`
}

var defaults = map[string]interface{}{
	"APP_ENV":             "development",
	"OTEL_SERVICE_NAME":   "likes-service",
	"LOG_LEVEL":           "info",
	"HTTP_PORT":           "8084",
	"GRPC_PORT":           "9094",
	"DB_HOST":             "localhost",
	"DB_PORT":             "5432",
	"DB_USER":             "postgres",
	"DB_PASSWORD":         "postgres",
	"DB_NAME":             "likesdb",
	"DB_SSLMODE":          "disable",
	"DB_MAX_OPEN_CONNS":   25,
	"DB_MAX_IDLE_CONNS":   5,
	"REDIS_ADDR":          "",
	"REDIS_PASSWORD":      "",
	"LOOKUP_CACHE_TTL":    "5m",
	"ARTICLE_SERVICE_URL": "http://localhost:8081",
	"USER_SERVICE_URL":    "http://localhost:8080",
	"JWT_SECRET":          defaultJWTSecret,
	"MAX_PAGE_SIZE":       100,
	"ALLOWED_ORIGINS":     "*",
	"JAEGER_ENDPOINT":     "",
}

// LoadConfig reads config.yml and .env when present; environment variables win.
func LoadConfig() (*Config, error) {
	// .env is optional in every environment
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("config")
	v.SetConfigType("yml")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.DBSSLMode = strings.ToLower(strings.TrimSpace(cfg.DBSSLMode))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == ""
}

// IsProduction reports whether strict production checks apply
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures required values are present and sane
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	if c.GRPCPort == "" {
		return errors.New("GRPC_PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.ArticleServiceURL == "" {
		return errors.New("ARTICLE_SERVICE_URL is required")
	}
	if c.UserServiceURL == "" {
		return errors.New("USER_SERVICE_URL is required")
	}
	if c.MaxPageSize < 1 {
		return errors.New("MAX_PAGE_SIZE must be positive")
	}
	if c.LookupCacheTTL < 0 {
		return errors.New("LOOKUP_CACHE_TTL cannot be negative")
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret || len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be a non-default secret of at least 32 characters in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable TLS in production")
		}
	}
	return nil
}

// Database returns the connection settings for pkg/database
func (c *Config) Database() database.Config {
	return database.Config{
		Host:         c.DBHost,
		Port:         c.DBPort,
		User:         c.DBUser,
		Password:     c.DBPassword,
		DBName:       c.DBName,
		SSLMode:      c.DBSSLMode,
		MaxOpenConns: c.DBMaxOpenConns,
		MaxIdleConns: c.DBMaxIdleConns,
	}
}

// Origins splits ALLOWED_ORIGINS into a list for CORS
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
