package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Translator TranslatorConfig
	QnA        QnAConfig
	Bot        BotConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TranslatorConfig holds remote translation service configuration
type TranslatorConfig struct {
	Endpoint        string
	SubscriptionKey string
	TimeoutSeconds  int
}

// QnAConfig holds knowledge-base service configuration
type QnAConfig struct {
	Endpoint       string
	EndpointKey    string
	TimeoutSeconds int
}

// BotConfig holds conversational behavior configuration
type BotConfig struct {
	// TranslateTo is the processing locale all knowledge-base content is authored in.
	TranslateTo                             string
	SkipLanguageDetectionAfterInitialChoice bool
	ResourcesPath                           string
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "chatbot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Translator: TranslatorConfig{
			Endpoint:        getEnv("TRANSLATOR_ENDPOINT", "https://api-nam.cognitive.microsofttranslator.com"),
			SubscriptionKey: getEnv("TRANSLATOR_TEXT_KEY", ""),
			TimeoutSeconds:  getEnvAsInt("TRANSLATOR_TIMEOUT", 5),
		},
		QnA: QnAConfig{
			Endpoint:       getEnv("QNA_ENDPOINT", ""),
			EndpointKey:    getEnv("QNA_ENDPOINT_KEY", ""),
			TimeoutSeconds: getEnvAsInt("QNA_TIMEOUT", 10),
		},
		Bot: BotConfig{
			TranslateTo:                             getEnv("TRANSLATE_TO", "en"),
			SkipLanguageDetectionAfterInitialChoice: getEnvAsBool("SKIP_LANGUAGE_DETECTION_AFTER_INITIAL_CHOICE", false),
			ResourcesPath:                           getEnv("RESOURCES_PATH", "resources"),
		},
	}

	if cfg.Translator.SubscriptionKey == "" {
		return nil, fmt.Errorf("TRANSLATOR_TEXT_KEY is required")
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
