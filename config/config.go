package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the plant care service
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Connection pool sizing
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Server configuration
	Port string

	// Plant.id configuration (identification + health assessment)
	PlantIDAPIKey   string
	PlantIDEndpoint string

	// PlantNet configuration (identification only)
	PlantNetAPIKey   string
	PlantNetEndpoint string
	PlantNetProject  string

	// Gemini chat assistant configuration
	GeminiAPIKey string
	GeminiModel  string

	// Ordered list of identification providers, primary first
	ProviderOrder []string

	// HTTP timeout used for all outbound provider calls
	RequestTimeout time.Duration

	// Local collections storage
	CollectionsDir string

	// Auth
	JWTSecret string

	// RabbitMQ (optional)
	AMQPURL              string
	AMQPExchange         string
	IdentifiedRoutingKey string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	config := &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret_app"),
		DBName:     getEnv("DB_NAME", "plantcare"),

		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 25),

		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Identification providers
		PlantIDAPIKey:   getEnv("PLANT_ID_API_KEY", ""),
		PlantIDEndpoint: getEnv("PLANT_ID_ENDPOINT", "https://plant.id/api/v3"),

		PlantNetAPIKey:   getEnv("PLANTNET_API_KEY", ""),
		PlantNetEndpoint: getEnv("PLANTNET_ENDPOINT", "https://my-api.plantnet.org/v2/identify"),
		PlantNetProject:  getEnv("PLANTNET_PROJECT", "all"),

		// Chat assistant
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		ProviderOrder: getStringSliceEnv("IDENTIFY_PROVIDER_ORDER", "plantid,plantnet"),

		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),

		// Local collections
		CollectionsDir: getEnv("COLLECTIONS_DIR", "./data/collections"),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", ""),

		// RabbitMQ
		AMQPURL:              getEnv("AMQP_URL", ""),
		AMQPExchange:         getEnv("AMQP_EXCHANGE", "plantcare"),
		IdentifiedRoutingKey: getEnv("AMQP_IDENTIFIED_ROUTING_KEY", "plant.identified"),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config
}

// getStringSliceEnv gets a comma-separated string environment variable and returns it as a string slice
func getStringSliceEnv(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
