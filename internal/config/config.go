package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Database variables are required because the
// process must not start without storage; everything else falls back to the
// defaults the original deployment shipped with.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	SessionSecret   string // secret used to sign session cookies
	SessionTTLHours int    // rolling session lifetime in hours
	BcryptCost      int    // bcrypt cost for password hashing
	BrokerURL       string // AMQP broker URL; empty disables event publishing
	StaticDir       string // directory served at / (frontend controllers)
}

// Load reads configuration values from environment variables and returns a
// Config. Missing required variables cause the program to exit with a fatal
// log message.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "3000"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		SessionSecret:   getenv("SESSION_SECRET", "barbie-barber-secret-key-2024"),
		SessionTTLHours: getenvInt("SESSION_TTL_HOURS", 24),
		BcryptCost:      getenvInt("BCRYPT_COST", 10),
		BrokerURL:       brokerURL(),
		StaticDir:       getenv("STATIC_DIR", "public"),
	}
}

// brokerURL accepts either BROKER_URL or the conventional RABBITMQ_URL.
// Publishing stays disabled when neither is set.
func brokerURL() string {
	if v := os.Getenv("BROKER_URL"); v != "" {
		return v
	}
	return os.Getenv("RABBITMQ_URL")
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable or a default.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the value into an integer. Invalid
// values fall back to the default rather than aborting startup.
func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, s, def)
		return def
	}
	return n
}
