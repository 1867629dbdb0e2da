// Package config provides configuration management for the league panel console.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the production backend used when API_BASE_URL is unset.
const DefaultAPIBaseURL = "https://back.hodleague.com"

// Credential backends
const (
	BackendCookie = "cookie"
	BackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	API         APIConfig
	Credentials CredentialsConfig
	Database    DatabaseConfig
	Audit       AuditConfig
	Login       LoginConfig
	Logging     LoggingConfig
	CLI         CLIConfig
}

// ServerConfig holds console HTTP server configuration
type ServerConfig struct {
	Port     string
	Host     string
	PageSize int
}

// APIConfig holds backend panel API configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CredentialsConfig controls where the operator's token and username are persisted
type CredentialsConfig struct {
	Backend      string
	CookieSecure bool
	TokenTTL     time.Duration
	UsernameTTL  time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Postgres PostgresConfig
	Redis    RedisConfig
}

// PostgresConfig holds Postgres configuration
type PostgresConfig struct {
	Host           string
	Port           string
	Database       string
	User           string
	Password       string
	MaxConnections int
}

// URL returns the connection URL understood by golang-migrate.
func (c PostgresConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
	KeyPrefix      string
}

// AuditConfig holds operator audit log configuration
type AuditConfig struct {
	Enabled bool // persist audit entries to Postgres; they are always logged
}

// LoginConfig holds sign-in throttling configuration
type LoginConfig struct {
	RatePerMinute int
	Burst         int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// CLIConfig holds panelctl configuration
type CLIConfig struct {
	CredentialsPath string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables can be set directly
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:     getEnv("SERVER_PORT", "8080"),
			Host:     getEnv("SERVER_HOST", "0.0.0.0"),
			PageSize: getEnvAsInt("PAGE_SIZE", 20),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Credentials: CredentialsConfig{
			Backend:      strings.ToLower(getEnv("CREDENTIAL_BACKEND", BackendCookie)),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
			TokenTTL:     getEnvAsDuration("TOKEN_TTL", 8*time.Hour),
			UsernameTTL:  getEnvAsDuration("USERNAME_TTL", 30*24*time.Hour),
		},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{
				Host:           getEnv("POSTGRES_HOST", "localhost"),
				Port:           getEnv("POSTGRES_PORT", "5432"),
				Database:       getEnv("POSTGRES_DB", "league_panel"),
				User:           getEnv("POSTGRES_USER", "panel"),
				Password:       getEnv("POSTGRES_PASSWORD", ""),
				MaxConnections: getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			},
			Redis: RedisConfig{
				Host:           getEnv("REDIS_HOST", "localhost"),
				Port:           getEnv("REDIS_PORT", "6379"),
				Password:       getEnv("REDIS_PASSWORD", ""),
				DB:             getEnvAsInt("REDIS_DB", 0),
				MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 20),
				KeyPrefix:      getEnv("REDIS_KEY_PREFIX", "panel:credentials:"),
			},
		},
		Audit: AuditConfig{
			Enabled: getEnvAsBool("AUDIT_ENABLED", false),
		},
		Login: LoginConfig{
			RatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
			Burst:         getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CLI: CLIConfig{
			CredentialsPath: getEnv("PANELCTL_CREDENTIALS", defaultCredentialsPath()),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail late at request time
func (c *Config) Validate() error {
	switch c.Credentials.Backend {
	case BackendCookie, BackendRedis:
	default:
		return fmt.Errorf("invalid CREDENTIAL_BACKEND %q (must be %q or %q)", c.Credentials.Backend, BackendCookie, BackendRedis)
	}
	if c.Server.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Server.PageSize)
	}
	if c.Credentials.TokenTTL <= 0 || c.Credentials.UsernameTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL and USERNAME_TTL must be positive")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	return nil
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".panelctl-credentials.json"
	}
	return dir + string(os.PathSeparator) + "panelctl" + string(os.PathSeparator) + "credentials.json"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
