package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
	// MaxUploadBytes caps the size of a multipart upload body.
	MaxUploadBytes int64
}

type DatabaseConfig struct {
	DSN     string
	Timeout time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicBaseURL is the externally resolvable prefix for stored objects.
	// Defaults to the endpoint with the matching scheme when unset.
	PublicBaseURL string
	Timeout       time.Duration
}

type AuthConfig struct {
	// AdminPassword is either the shared secret itself or a bcrypt hash of it.
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	viper.SetDefault("MAX_UPLOAD_MB", 50)
	viper.SetDefault("DATABASE_TIMEOUT", 10)
	viper.SetDefault("MINIO_BUCKET", "class-notes")
	viper.SetDefault("MINIO_TIMEOUT", 15)
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Host:           viper.GetString("SERVER_HOST"),
			Environment:    viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			CORSOrigins:    splitOrigins(viper.GetString("CORS_ORIGINS")),
			MaxUploadBytes: viper.GetInt64("MAX_UPLOAD_MB") << 20,
		},
		Database: DatabaseConfig{
			DSN:     viper.GetString("DATABASE_DSN"),
			Timeout: time.Duration(viper.GetInt("DATABASE_TIMEOUT")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:      viper.GetString("MINIO_ENDPOINT"),
			AccessKey:     viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:        viper.GetBool("MINIO_USE_SSL"),
			Bucket:        viper.GetString("MINIO_BUCKET"),
			PublicBaseURL: viper.GetString("MINIO_PUBLIC_URL"),
			Timeout:       time.Duration(viper.GetInt("MINIO_TIMEOUT")) * time.Second,
		},
		Auth: AuthConfig{
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Auth.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
