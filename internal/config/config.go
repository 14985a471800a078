package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the IMS API. It is built once in main and passed down.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	VMS      VMSConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// DatabaseConfig describes the relational store. Driver is "postgres" or "mysql".
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// VMSConfig points at the Vendor Management System partner API.
type VMSConfig struct {
	BaseURL    string
	OrdersPath string
	StatusPath string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// DefaultJWTSecret is the development-only signing key used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me"

// Load reads configuration from the environment, loading a .env file first if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			AppEnv:         getEnv("APP_ENV", "development"),
			Port:           getEnv("PORT", "8000"),
			AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "ims"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		VMS: VMSConfig{
			BaseURL:    strings.TrimRight(getEnv("VMS_BASE_URL", "http://127.0.0.1:8001"), "/"),
			OrdersPath: getEnv("VMS_ORDERS_PATH", "/vms/orders"),
			StatusPath: getEnv("VMS_STATUS_PATH", "/orders/vms/orders/update-status"),
			Timeout:    getEnvDuration("VMS_TIMEOUT", 10*time.Second),
			Retries:    getEnvInt("VMS_RETRIES", 3),
			RetryDelay: getEnvDuration("VMS_RETRY_DELAY", 2*time.Second),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
		},
	}
}

// Validate rejects settings that are only acceptable on a developer machine.
func (c *Config) Validate() error {
	if !c.Server.IsDevelopment() && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", c.Server.AppEnv)
	}
	return nil
}

// DSN renders the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// IsDevelopment reports whether the service runs in a local/dev environment.
func (c ServerConfig) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("2s", "5m") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
