package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	ServerPort   string
	DatabaseURL  string
	DatabaseType string

	SecretKey         string
	Algorithm         string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	TokenTTLMinutes   int

	PhotosEnabled  bool
	QuizEnabled    bool
	PhotoListGated bool
	QuizListGated  bool

	MaxUploadBytes  int64
	LegacyUploadDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSOrigins []string
	LogLevel    string
}

// Load reads the environment. Missing DATABASE_URL or SECRET_KEY is an error:
// the server must not start half-configured.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DatabaseType:      strings.ToLower(getEnv("DATABASE_TYPE", DatabasePostgres)),
		SecretKey:         os.Getenv("SECRET_KEY"),
		Algorithm:         strings.ToUpper(getEnv("ALGORITHM", "HS256")),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LegacyUploadDir:   getEnv("LEGACY_UPLOAD_DIR", "uploaded_photos"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.TokenTTLMinutes, err = getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 0); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	if cfg.PhotosEnabled, err = getEnvBool("PHOTOS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.QuizEnabled, err = getEnvBool("QUIZ_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.PhotoListGated, err = getEnvBool("PHOTO_LIST_GATED", false); err != nil {
		return nil, err
	}
	if cfg.QuizListGated, err = getEnvBool("QUIZ_LIST_GATED", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL required")
	}
	if c.DatabaseType != DatabasePostgres && c.DatabaseType != DatabaseSQLite {
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.DatabaseType)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY required")
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported ALGORITHM %q", c.Algorithm)
	}
	if c.AdminUsername == "" {
		return errors.New("ADMIN_USERNAME must not be empty")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH required")
	}
	if c.TokenTTLMinutes < 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must not be negative")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
