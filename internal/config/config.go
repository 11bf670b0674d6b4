package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Config is built once at startup and passed by pointer to the components
// that need it. Nothing mutates it afterwards.
type Config struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration

	DBDriver   string
	DBURL      string
	DBLogLevel string

	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=code_explainer port=5432 sslmode=disable"),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTAlgorithm:   strings.ToUpper(getEnv("ALGORITHM", "HS256")),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 20*time.Minute),

		AIAPIKey:  getEnv("GROQ_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", "https://api.groq.com/openai/v1"),
		AIModel:   getEnv("AI_MODEL", "llama-3.3-70b-versatile"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if _, ok := supportedAlgorithms[c.JWTAlgorithm]; !ok {
		errs = append(errs, fmt.Errorf("unsupported ALGORITHM %q", c.JWTAlgorithm))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.DBURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration accepts Go duration strings ("20m") and falls back to the
// default on anything unparsable.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
