package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// PlaceholderJWTSecret is the in-code signing key used when JWT_SECRET is unset.
// It is only fit for local development.
const PlaceholderJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Port         string
	AllowOrigins string
	TZDefault    string
	LogLevel     slog.Level

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	ReqTimeoutSec  int
	RateLimitRPS   float64
	RateLimitBurst int

	SeedSampleData bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func atof(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func atob(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func level(key string, def slog.Level) slog.Level {
	var l slog.Level
	if v := os.Getenv(key); v != "" {
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "3001"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),
		TZDefault:    getenv("TZ_DEFAULT", "UTC"),
		LogLevel:     level("LOG_LEVEL", slog.LevelInfo),

		JWTSecret:  getenv("JWT_SECRET", PlaceholderJWTSecret),
		TokenTTL:   time.Duration(atoi("TOKEN_TTL_HOURS", 7*24)) * time.Hour,
		BcryptCost: atoi("BCRYPT_COST", 10),

		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", ""),
		DBName:            getenv("DB_NAME", "creator_finance"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    atoi("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    atoi("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: time.Duration(atoi("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute,

		ReqTimeoutSec:  atoi("REQUEST_TIMEOUT_SECONDS", 30),
		RateLimitRPS:   atof("RATE_LIMIT_RPS", 5),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 10),

		SeedSampleData: atob("SEED_SAMPLE_DATA", true),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, "JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, "TOKEN_TTL_HOURS must be positive")
	}
	// bcrypt.MinCost..bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Sprintf("invalid BCRYPT_COST %d: must be between 4 and 31", c.BcryptCost))
	}
	if strings.TrimSpace(c.DBName) == "" {
		errs = append(errs, "DB_NAME must not be empty")
	}
	if _, err := time.LoadLocation(c.TZDefault); err != nil {
		errs = append(errs, fmt.Sprintf("invalid TZ_DEFAULT '%s'", c.TZDefault))
	}
	if c.ReqTimeoutSec <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT_SECONDS must be positive")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

// UsesPlaceholderSecret is true when tokens would be signed with the in-code default.
func (c *Config) UsesPlaceholderSecret() bool {
	return c.JWTSecret == PlaceholderJWTSecret
}

// Location resolves TZDefault, falling back to UTC.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.TZDefault); err == nil {
		return loc
	}
	return time.UTC
}

// DSN builds the postgres connection URL with credentials escaped.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}
