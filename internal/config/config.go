package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all tunable parameters for the API process. Values are
// loaded from environment variables with defaults that let the binary run
// locally without excessive setup.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL string

	JWTSecret string

	StripeAPIKey     string
	StripeCurrency   string
	FirebaseCredPath string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	S3Bucket     string
	BaseURL      string
	UploadDir    string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	LogLevel string
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		ShutdownTimeout: 15 * time.Second,
		DBHost:          "localhost",
		DBPort:          "5432",
		RedisURL:        "redis://redis:6379",
		StripeCurrency:  "inr",
		BaseURL:         "http://localhost:8080",
		UploadDir:       "/app/uploads",
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		LogLevel:        "info",
	}
}

// Load reads the process environment into a Config. All parse problems are
// collected and returned together.
func Load() (Config, error) {
	cfg := defaultConfig()
	var errs []error

	setStringFromEnv(&cfg.Port, "PORT")
	setDurationFromEnv(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT", &errs)

	setStringFromEnv(&cfg.DBHost, "DB_HOST")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	setStringFromEnv(&cfg.DBPort, "DB_PORT")

	setStringFromEnv(&cfg.RedisURL, "REDIS_URL")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	cfg.StripeAPIKey = os.Getenv("STRIPE_API_KEY")
	setStringFromEnv(&cfg.StripeCurrency, "STRIPE_CURRENCY")
	cfg.FirebaseCredPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	cfg.AWSRegion = os.Getenv("AWS_REGION")
	cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
	setStringFromEnv(&cfg.BaseURL, "BASE_URL")
	setStringFromEnv(&cfg.UploadDir, "UPLOAD_DIR")

	setIntFromEnv(&cfg.MaxIdleConns, "DB_MAX_IDLE_CONNS", &errs)
	setIntFromEnv(&cfg.MaxOpenConns, "DB_MAX_OPEN_CONNS", &errs)
	setDurationFromEnv(&cfg.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME", &errs)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be set"))
	}

	return cfg, errors.Join(errs...)
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setIntFromEnv(target *int, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}
