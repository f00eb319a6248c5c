// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "kalakriti-dev-secret-change-me"

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Storage     StorageConfig
	Cloudinary  CloudinaryConfig
	AWS         AWSConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"5000"`
	ReadTimeout  int    `env:"SERVER_READ_TIMEOUT" envDefault:"15"`
	WriteTimeout int    `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
	IdleTimeout  int    `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`
	BodyLimitMB  int64  `env:"BODY_LIMIT_MB" envDefault:"10"`
}

type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET" envDefault:"kalakriti-dev-secret-change-me"`
	TTLHours  int    `env:"JWT_TTL_HOURS" envDefault:"24"`
}

// StorageConfig selects the image store. Driver is one of cloudinary, s3 or local.
type StorageConfig struct {
	Driver    string `env:"IMAGE_STORE" envDefault:"cloudinary"`
	Folder    string `env:"IMAGE_FOLDER" envDefault:"kalakriti_products"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	BaseURL   string `env:"UPLOAD_BASE_URL"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

type AWSConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"ap-south-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket        string `env:"AWS_S3_BUCKET"`
	CloudFrontURL   string `env:"AWS_CLOUDFRONT_URL"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:19006,http://localhost:8081,exp://localhost:19000"`
}

type RateLimitConfig struct {
	AuthPerMinute int `env:"AUTH_RATE_PER_MINUTE" envDefault:"10"`
}

type LogConfig struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Requests bool
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Morgan-style request logs are a development default
	config.Log.Requests = getEnvAsBool("LOG_REQUESTS", config.IsDevelopment())

	if config.Storage.BaseURL == "" {
		config.Storage.BaseURL = fmt.Sprintf("http://localhost:%s/uploads", config.Server.Port)
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.IsProduction() {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.JWT.TTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}

	if c.Database.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	switch c.Storage.Driver {
	case "cloudinary":
		if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
			return fmt.Errorf("missing required Cloudinary configuration")
		}
	case "s3":
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for the s3 image store")
		}
	case "local":
	default:
		return fmt.Errorf("unknown IMAGE_STORE %q", c.Storage.Driver)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
