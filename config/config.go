package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Environment       string
	HTTPHost          string
	HTTPPort          string
	MySQLDSN          string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	ResetTokenTTL     time.Duration
	ResetLinkBase     string
	PasswordMinLength int
	BcryptCost        int
	LogLevel          string
	LogFormat         string
	SMTP              SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether mail delivery is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) ValidatePassword(password string) error {
	if len(password) < c.PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", c.PasswordMinLength)
	}
	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return &Config{
		Environment:       getEnv("APP_ENV", EnvDevelopment),
		HTTPHost:          getEnv("HTTP_HOST", ""),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		MySQLDSN:          mysqlDSN,
		JWTSecret:         jwtSecret,
		JWTAccessTokenTTL: getDurationEnv("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
		ResetTokenTTL:     getDurationEnv("RESET_TOKEN_TTL", time.Hour),
		ResetLinkBase:     getEnv("RESET_LINK_BASE", "http://localhost:8080/reset-password"),
		PasswordMinLength: getIntEnv("PASSWORD_MIN_LENGTH", 6),
		BcryptCost:        getIntEnv("BCRYPT_COST", 10),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getIntEnv("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@tourcolombia.example"),
		},
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
