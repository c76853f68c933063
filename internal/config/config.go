package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field maps to an
// environment variable. The database DSN is optional: with no database
// configured the server runs on the in-memory stores, which is how the
// demo environment operates.
type Config struct {
	Env          string   // application environment (e.g. "dev", "prod")
	Port         string   // HTTP port to listen on
	DBUser       string   // database username (optional)
	DBPass       string   // database password (optional)
	DBHost       string   // database host address
	DBPort       string   // database port number
	DBName       string   // database name
	JWTSecret    string   // secret used to sign JWTs
	AccessTTLMin int      // access token time-to-live in minutes
	CodeTTLMin   int      // verification code time-to-live in minutes
	AdminPhones  []string // phone numbers that log in with the admin role
}

// Load reads configuration from the environment. JWT_SECRET is the
// only hard requirement; everything else has a workable default.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       getenv("DB_NAME", "absolute_cinema"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: intEnv("ACCESS_TOKEN_TTL_MIN", 60),
		CodeTTLMin:   intEnv("CODE_TTL_MIN", 5),
		AdminPhones:  splitList(os.Getenv("ADMIN_PHONES")),
	}
}

// UseDatabase reports whether a MySQL connection is configured.
func (c Config) UseDatabase() bool {
	return c.DBUser != ""
}

// must retrieves a required environment variable; a missing value is a
// fatal startup error.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func intEnv(key string, def int) int {
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

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
