// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Secrets for access and
// refresh tokens are independent: a token signed with one never verifies
// under the other.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	AccessSecret   string // secret for signing access tokens
	RefreshSecret  string // secret for signing refresh tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	PublicDir      string // root directory for uploaded files
}

// Load reads configuration from environment variables. Required variables
// are enforced by must(); missing values abort startup with a fatal log.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8000"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		AccessSecret:   must("ACCESS_SECRET_KEY"),
		RefreshSecret:  must("REFRESH_SECRET_KEY"),
		AccessTTLMin:   intenv("ACCESS_TOKEN_TTL_MIN", 10),
		RefreshTTLDays: intenv("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     intenv("BCRYPT_COST", 10),
		PublicDir:      getenv("PUBLIC_DIR", "public"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intenv converts an optional environment variable to int, falling back
// to def when unset. An unparsable value is a fatal configuration error.
func intenv(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
