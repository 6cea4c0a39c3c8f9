package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL          string
	Port                 string
	GoEnv                string
	Auth0Domain          string
	Auth0Audience        string
	AWSRegion            string
	AWSS3Bucket          string
	AWSAccessKeyID       string
	AWSSecretAccessKey   string
	PaymentWebhookSecret string
	// CommissionRate is the platform's cut of vendor revenue per payment
	// method. The legacy system disagreed with itself (2% in billing, 10% in
	// reports), so the rate is a single configurable value here.
	CommissionRate float64
	LogLevel       string
}

var appConfig *Config

// Load loads the configuration from environment variables.
// It automatically determines which .env file to load based on GO_ENV.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try the environment-specific file first, then fall back to .env.
	// In production the variables are usually set directly.
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	rate, err := parseCommissionRate(getEnv("COMMISSION_RATE", "0.02"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		Port:                 getEnv("PORT", "8080"),
		GoEnv:                env,
		Auth0Domain:          getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:        getEnv("AUTH0_AUDIENCE", ""),
		AWSRegion:            getEnv("AWS_REGION", "ap-southeast-1"),
		AWSS3Bucket:          getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:       getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		CommissionRate:       rate,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	return appConfig
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(cfg *Config) {
	appConfig = cfg
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

func parseCommissionRate(raw string) (float64, error) {
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("COMMISSION_RATE must be a number: %w", err)
	}
	if rate < 0 || rate >= 1 {
		return 0, fmt.Errorf("COMMISSION_RATE must be in [0, 1), got %v", rate)
	}
	return rate, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
