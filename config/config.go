package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidyhome/homeservices-api/utils"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	Auth0Domain        string
	Auth0Audience      string
	JWTSecret          string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LogLevel           string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitMQURL string

	LLMGatewayURL string
	LLMAPIKey     string
	LLMModel      string

	ResendAPIKey string
	EmailFrom    string

	MapsAPIKey string

	CompanyName    string
	ContactPhone   string
	WhatsAppNumber string

	CORSAllowedOrigins []string
}

var current *Config

// minProductionSecretLen is the shortest JWT_SECRET accepted outside development and test
const minProductionSecretLen = 32

// Load reads .env.<GO_ENV> (falling back to .env) and then the process environment
func Load() (*Config, error) {
	loadEnvFile()

	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	current = cfg
	return cfg, nil
}

func loadEnvFile() {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err == nil {
		utils.Logger.WithField("file", envFile).Info("Loaded configuration")
		return
	}
	// Deployed containers get their environment injected, so a missing file is fine
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found, using system environment variables")
	}
}

func fromEnv() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		Auth0Domain:        getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:      getEnv("AUTH0_AUDIENCE", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AWSRegion:          getEnv("AWS_REGION", "eu-west-2"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		CacheTTL:           getEnvDuration("CACHE_TTL", 5*time.Minute),
		RabbitMQURL:        getEnv("RABBITMQ_URL", ""),
		LLMGatewayURL:      strings.TrimSuffix(getEnv("LLM_GATEWAY_URL", "https://api.openai.com/v1"), "/"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "bookings@tidyhome.co.uk"),
		MapsAPIKey:         getEnv("MAPS_API_KEY", ""),
		CompanyName:        getEnv("COMPANY_NAME", "Tidy Home Services"),
		ContactPhone:       getEnv("CONTACT_PHONE", "020 7946 0000"),
		WhatsAppNumber:     getEnv("WHATSAPP_NUMBER", "+44 7700 900000"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}
}

// Validate reports every missing or unsafe setting at once. Test runs need nothing.
func (c *Config) Validate() error {
	if c.IsTest() {
		return nil
	}

	var problems []error
	if c.DatabaseURL == "" {
		problems = append(problems, errors.New("DATABASE_URL is required"))
	}
	if c.Auth0Domain == "" && c.JWTSecret == "" {
		problems = append(problems, errors.New("either AUTH0_DOMAIN or JWT_SECRET is required"))
	}
	if c.IsProduction() && c.Auth0Domain == "" && len(c.JWTSecret) < minProductionSecretLen {
		problems = append(problems, fmt.Errorf("JWT_SECRET must be at least %d characters in production", minProductionSecretLen))
	}
	if c.AWSAccessKeyID != "" && c.AWSSecretAccessKey == "" {
		problems = append(problems, errors.New("AWS_SECRET_ACCESS_KEY is required when AWS_ACCESS_KEY_ID is set"))
	}
	return errors.Join(problems...)
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// GetConfig returns the configuration loaded by Load (or set by SetConfig)
func GetConfig() *Config {
	return current
}

// SetConfig replaces the active configuration (primarily for testing)
func SetConfig(cfg *Config) {
	current = cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		utils.Logger.WithField("key", key).WithField("value", value).Warnf("Invalid integer, using %d", defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		utils.Logger.WithField("key", key).WithField("value", value).Warnf("Invalid duration, using %s", defaultValue)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
