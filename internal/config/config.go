package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Credential store backends.
const (
	BackendMongo = "mongo"
	BackendMySQL = "mysql"
)

var ErrInsecureSecret = errors.New("JWT_SECRET or JWT_SECRET_FILE must be set in production environment")

// Config is built once at startup and passed by value into every component.
type Config struct {
	Port              string
	Env               string
	MongoURI          string
	MongoDatabase     string
	CredentialBackend string
	MySQLDSN          string
	JWTSecret         string
	JWTExpiry         time.Duration
	RedisAddr         string
	RedisPassword     string
	CORSOrigins       []string
	AuthRateRPS       float64
	AuthRateBurst     int
	LogLevel          string
	LogFormat         string
}

// Load reads the configuration from the environment, applying defaults and
// rejecting values the server cannot run with.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DB", "gym_tracker"),
		CredentialBackend: strings.ToLower(getEnv("CREDENTIAL_BACKEND", BackendMongo)),
		MySQLDSN:          getEnv("MYSQL_DSN", "root:password@tcp(127.0.0.1:3306)/gym_tracker?parseTime=true"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	secret, err := loadSecret()
	if err != nil {
		return Config{}, err
	}
	cfg.JWTSecret = secret

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing JWT_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRY must be positive, got %s", expiry)
	}
	cfg.JWTExpiry = expiry

	cfg.AuthRateRPS, err = strconv.ParseFloat(getEnv("AUTH_RATE_RPS", "5"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parsing AUTH_RATE_RPS: %w", err)
	}
	if cfg.AuthRateRPS <= 0 {
		return Config{}, fmt.Errorf("AUTH_RATE_RPS must be positive, got %v", cfg.AuthRateRPS)
	}
	cfg.AuthRateBurst, err = strconv.Atoi(getEnv("AUTH_RATE_BURST", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing AUTH_RATE_BURST: %w", err)
	}
	if cfg.AuthRateBurst < 1 {
		return Config{}, fmt.Errorf("AUTH_RATE_BURST must be at least 1, got %d", cfg.AuthRateBurst)
	}

	switch cfg.CredentialBackend {
	case BackendMongo, BackendMySQL:
	default:
		return Config{}, fmt.Errorf("unknown CREDENTIAL_BACKEND %q", cfg.CredentialBackend)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		return Config{}, ErrInsecureSecret
	}

	return cfg, nil
}

// loadSecret prefers a mounted secret file over the plain environment variable.
func loadSecret() (string, error) {
	if path := os.Getenv("JWT_SECRET_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading JWT_SECRET_FILE: %w", err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("JWT_SECRET_FILE %s is empty", path)
		}
		return secret, nil
	}
	return getEnv("JWT_SECRET", devJWTSecret), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
