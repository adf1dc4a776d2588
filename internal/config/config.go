package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported DATABASE_TYPE values
const (
	DatabaseMySQL    = "mysql"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Redis    RedisConfig
	LogLevel string
}

type DatabaseConfig struct {
	Type     string
	Host     string
	Port     int
	Username string
	Password string
	Name     string
}

type ServerConfig struct {
	Port           int
	GinMode        string
	AllowedOrigins []string
	AuthRateLimit  int
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	SessionSecret string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	dbPort, err := getEnvAsInt("DATABASE_PORT", 5432)
	if err != nil {
		return nil, err
	}
	httpPort, err := getEnvAsInt("HTTP_LISTENING_PORT", 3000)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvAsInt("AUTH_RATE_LIMIT_RPM", 30)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getEnvAsDuration("JWT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Type:     strings.ToLower(getEnv("DATABASE_TYPE", DatabasePostgres)),
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     dbPort,
			Username: getEnv("DATABASE_USERNAME", "organiz"),
			Password: getEnv("DATABASE_PASSWORD", "organiz"),
			Name:     getEnv("DATABASE_NAME", "organiz"),
		},
		Server: ServerConfig{
			Port:           httpPort,
			GinMode:        getEnv("GIN_MODE", "debug"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			AuthRateLimit:  rateLimit,
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
			TokenTTL:      tokenTTL,
			SessionSecret: getEnv("SESSION_SECRET", "default-session-key-change-me"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		LogLevel: getEnv("LOGGING_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that cannot be expressed by defaults.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case DatabaseMySQL, DatabasePostgres, DatabaseSQLite:
	default:
		return fmt.Errorf("DATABASE_TYPE must be one of mysql, postgres, sqlite, got %q", c.Database.Type)
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("DATABASE_PORT must be within [0,65535], got %d", c.Database.Port)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_LISTENING_PORT must be within [1,65535], got %d", c.Server.Port)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Server.AuthRateLimit < 0 {
		return errors.New("AUTH_RATE_LIMIT_RPM cannot be negative")
	}
	if c.IsProduction() && c.Auth.JWTSecret == "default-secret-key-change-me" {
		return errors.New("JWT_SECRET must be set in release mode")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.GinMode == "release"
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
