package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// bcrypt rejects input over 72 bytes; the length policy counts runes,
// so the configurable maximum must hold even for 4-byte runes.
const (
	bcryptMaxBytes       = 72
	MaxPasswordMaxLength = bcryptMaxBytes / utf8.UTFMax
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables (và config file nếu có)
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Seed     SeedConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Driver string // postgres, sqlite

	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	ConnectTimeout    time.Duration

	SQLitePath string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	TTL      time.Duration // cache lifetime of a single entity
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

type AuthConfig struct {
	PasswordMinLength int
	PasswordMaxLength int
	BcryptCost        int
}

// SeedConfig holds the passwords used by the seed command
type SeedConfig struct {
	AdminPassword    string
	CustomerPassword string
}

type LogConfig struct {
	Level string
}

// New returns a viper instance with every default set and env lookup on.
// Keys are flat so that AutomaticEnv maps "db_host" to DB_HOST.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("app_name", "Bookstore API")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_port", "8080")
	v.SetDefault("app_version", "1.0.0")

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "bookstore")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "bookstore_dev")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_max_connections", 25)
	v.SetDefault("db_min_connections", 5)
	v.SetDefault("db_max_conn_lifetime", "5m")
	v.SetDefault("db_max_conn_idle_time", "1m")
	v.SetDefault("db_health_check_period", "1m")
	v.SetDefault("db_max_retries", 5)
	v.SetDefault("db_retry_delay", "1s")
	v.SetDefault("db_connect_timeout", "10s")
	v.SetDefault("db_sqlite_path", "data/bookstore.db")

	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_host", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_ttl", "10m")

	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_issuer", "bookstore-api")
	v.SetDefault("jwt_token_ttl", "5m")

	v.SetDefault("auth_password_min_length", 6)
	v.SetDefault("auth_password_max_length", 15)
	v.SetDefault("auth_bcrypt_cost", 12)

	v.SetDefault("seed_admin_password", "")
	v.SetDefault("seed_customer_password", "")

	v.SetDefault("log_level", "info")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadEnvFiles nạp .env vào process environment; file không tồn tại thì bỏ qua
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load đọc config từ v (defaults, config file, env) và validate
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app_name"),
			Environment: v.GetString("app_env"),
			Port:        v.GetString("app_port"),
			Version:     v.GetString("app_version"),
		},
		Database: DatabaseConfig{
			Driver:            strings.ToLower(v.GetString("db_driver")),
			Host:              v.GetString("db_host"),
			Port:              v.GetInt("db_port"),
			User:              v.GetString("db_user"),
			Password:          v.GetString("db_password"),
			Name:              v.GetString("db_name"),
			SSLMode:           v.GetString("db_sslmode"),
			MaxConns:          v.GetInt("db_max_connections"),
			MinConns:          v.GetInt("db_min_connections"),
			MaxConnLifetime:   v.GetDuration("db_max_conn_lifetime"),
			MaxConnIdleTime:   v.GetDuration("db_max_conn_idle_time"),
			HealthCheckPeriod: v.GetDuration("db_health_check_period"),
			MaxRetries:        v.GetInt("db_max_retries"),
			RetryDelay:        v.GetDuration("db_retry_delay"),
			ConnectTimeout:    v.GetDuration("db_connect_timeout"),
			SQLitePath:        v.GetString("db_sqlite_path"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis_enabled"),
			Host:     v.GetString("redis_host"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			TTL:      v.GetDuration("redis_ttl"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt_secret"),
			Issuer:   v.GetString("jwt_issuer"),
			TokenTTL: v.GetDuration("jwt_token_ttl"),
		},
		Auth: AuthConfig{
			PasswordMinLength: v.GetInt("auth_password_min_length"),
			PasswordMaxLength: v.GetInt("auth_password_max_length"),
			BcryptCost:        v.GetInt("auth_bcrypt_cost"),
		},
		Seed: SeedConfig{
			AdminPassword:    v.GetString("seed_admin_password"),
			CustomerPassword: v.GetString("seed_customer_password"),
		},
		Log: LogConfig{
			Level: v.GetString("log_level"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TOKEN_TTL must be positive")
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("REDIS_TTL must be positive")
	}

	if c.Auth.PasswordMinLength < 1 || c.Auth.PasswordMaxLength < c.Auth.PasswordMinLength {
		return fmt.Errorf("invalid password bounds %d..%d", c.Auth.PasswordMinLength, c.Auth.PasswordMaxLength)
	}
	if c.Auth.PasswordMaxLength > MaxPasswordMaxLength {
		return fmt.Errorf("AUTH_PASSWORD_MAX_LENGTH must be at most %d, got %d", MaxPasswordMaxLength, c.Auth.PasswordMaxLength)
	}

	// Production environment phải có JWT secret
	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Driver == DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
