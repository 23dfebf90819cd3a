package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string `yaml:"port"`
	DatabaseURL   string `yaml:"database_url"`
	JWTSecret     string `yaml:"jwt_secret"`
	JWTIssuer     string `yaml:"jwt_issuer"`
	JWTTTLMinutes int    `yaml:"jwt_ttl_minutes"`
	RedisURL      string `yaml:"redis_url"`

	BlobDriver    string `yaml:"blob_driver"`
	BlobDir       string `yaml:"blob_dir"`
	PublicBaseURL string `yaml:"public_base_url"`
	S3Bucket      string `yaml:"s3_bucket"`
	S3Region      string `yaml:"s3_region"`
	S3Endpoint    string `yaml:"s3_endpoint"`
	S3AccessKey   string `yaml:"s3_access_key"`
	S3SecretKey   string `yaml:"s3_secret_key"`
	S3PublicURL   string `yaml:"s3_public_url"`

	CookieName   string `yaml:"cookie_name"`
	CookieSecure bool   `yaml:"cookie_secure"`
	LogLevel     string `yaml:"log_level"`

	OpenRouterAPIKey  string `yaml:"openrouter_api_key"`
	OpenRouterBaseURL string `yaml:"openrouter_base_url"`
	OpenRouterModel   string `yaml:"openrouter_model"`
}

func defaults() Config {
	return Config{
		Port:          "8080",
		JWTSecret:     "dev-secret-change",
		JWTIssuer:     "folio",
		JWTTTLMinutes: 60 * 24,
		BlobDriver:    "local",
		BlobDir:       "./data/blobs",
		PublicBaseURL: "http://localhost:8080",
		S3Region:      "us-east-1",
		CookieName:    "folio_session",
		LogLevel:      "info",
	}
}

// Load reads environment variables, optionally from a .env file if present.
// A YAML file named by CONFIG_FILE is applied first; environment wins.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	base := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(&base, path); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:          getEnv("PORT", base.Port),
		DatabaseURL:   getEnv("DATABASE_URL", base.DatabaseURL),
		JWTSecret:     getEnv("JWT_SECRET", base.JWTSecret),
		JWTIssuer:     getEnv("JWT_ISSUER", base.JWTIssuer),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", base.JWTTTLMinutes),
		RedisURL:      getEnv("REDIS_URL", base.RedisURL),

		BlobDriver:    strings.ToLower(getEnv("BLOB_DRIVER", base.BlobDriver)),
		BlobDir:       getEnv("BLOB_DIR", base.BlobDir),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", base.PublicBaseURL), "/"),
		S3Bucket:      getEnv("S3_BUCKET", base.S3Bucket),
		S3Region:      getEnv("S3_REGION", base.S3Region),
		S3Endpoint:    getEnv("S3_ENDPOINT", base.S3Endpoint),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", base.S3AccessKey),
		S3SecretKey:   getEnv("S3_SECRET_KEY", base.S3SecretKey),
		S3PublicURL:   getEnv("S3_PUBLIC_URL", base.S3PublicURL),

		CookieName:   getEnv("COOKIE_NAME", base.CookieName),
		CookieSecure: getEnvBool("COOKIE_SECURE", base.CookieSecure),
		LogLevel:     getEnv("LOG_LEVEL", base.LogLevel),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", base.OpenRouterAPIKey),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", base.OpenRouterBaseURL),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", base.OpenRouterModel),
	}
	return cfg, cfg.Validate()
}

func overlayFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.BlobDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required for BLOB_DRIVER=s3")
		}
	default:
		return fmt.Errorf("config: unknown BLOB_DRIVER %q", c.BlobDriver)
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("config: JWT_TTL_MINUTES must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
