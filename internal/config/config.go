// Package config reads the configuration of fintrack from the environment.
//
// Variables can also be set in a .env file in the working directory. Values
// from the environment take precedence over those in the file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrSecretMissing   = errors.New("JWT_SECRET must be set")
	ErrAPIURLInvalid   = errors.New("API_URL must be an absolute URL")
	ErrDatabaseMissing = errors.New("DB_NAME must be set when DB_HOST is set")
	ErrSenderMissing   = errors.New("EMAIL_FROM must be set when EMAIL_HOST is set")
	ErrTrialDays       = errors.New("TRIAL_DAYS must be a positive number")
)

// Config is the complete configuration of the backend.
type Config struct {
	Port      string
	APIURL    string
	GinMode   string
	LogFormat string

	// SQLite is used unless DBHost is set
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret      string
	TokenTTL       time.Duration
	TrialDays      int
	TrialAllowList []string

	// Space separated, e.g. "http://localhost:3000 https://fintrack.example.com"
	CORSAllowOrigins []string
	EnablePprof      bool

	EmailHost string
	EmailPort int
	EmailUser string
	EmailPass string
	EmailFrom string
}

// Load reads the configuration. Unset variables use their defaults.
//
// Errors are returned for values that cannot be parsed. Use Validate
// to check that the configuration can be used to run the server.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}

	cfg := Config{
		Port:             env("PORT", "8080"),
		GinMode:          env("GIN_MODE", "release"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		DBPath:           env("DB_PATH", "data/fintrack.db"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TrialAllowList:   list(os.Getenv("TRIAL_ALLOWLIST")),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
		EmailHost:        os.Getenv("EMAIL_HOST"),
		EmailUser:        os.Getenv("EMAIL_USER"),
		EmailPass:        os.Getenv("EMAIL_PASS"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
	}
	cfg.APIURL = env("API_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))

	var errs []error

	cfg.TokenTTL, err = time.ParseDuration(env("TOKEN_TTL", "24h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TOKEN_TTL: %w", err))
	}

	cfg.TrialDays, err = strconv.Atoi(env("TRIAL_DAYS", "3"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TRIAL_DAYS: %w", err))
	}

	cfg.EmailPort, err = strconv.Atoi(env("EMAIL_PORT", "587"))
	if err != nil {
		errs = append(errs, fmt.Errorf("EMAIL_PORT: %w", err))
	}

	return cfg, errors.Join(errs...)
}

// Validate reports all problems that prevent the server from running.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, ErrSecretMissing)
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, ErrAPIURLInvalid)
	}

	if c.DBHost != "" && c.DBName == "" {
		errs = append(errs, ErrDatabaseMissing)
	}

	if c.EmailHost != "" && c.EmailFrom == "" {
		errs = append(errs, ErrSenderMissing)
	}

	if c.TrialDays <= 0 {
		errs = append(errs, ErrTrialDays)
	}

	return errors.Join(errs...)
}

// URL returns the parsed API URL.
func (c Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, ErrAPIURLInvalid
	}

	return u, nil
}

// UsePostgres reports if PostgreSQL is configured.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=prefer", quote(c.DBHost), quote(c.DBUser), quote(c.DBPassword), quote(c.DBName))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote quotes a value for a keyword/value connection string.
func quote(s string) string {
	return "'" + dsnEscaper.Replace(s) + "'"
}

// env returns the value of the variable or the fallback when it is not set.
func env(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	return value
}

// list splits a comma separated list and drops empty entries.
func list(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}

	return values
}
