package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	StoreDriver string // "postgres" or "mongo"
	DatabaseUrl string
	MongoUrl    string
	MongoDbName string
	CORSOrigins string // comma-separated list of allowed origins

	JWTKey    string
	JWTExpiry time.Duration
	SaltRound int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	FrontendURL        string

	SendGridApiKey string
	EmailSender    string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "5000"),
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		DatabaseUrl: getEnv("DATABASE_URL", ""),
		MongoUrl:    getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDbName: getEnv("MONGO_DB", "learnhub"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTExpiry: getEnvDuration("JWT_EXPIRES_IN", 168*time.Hour),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:5000/api/auth/callback/google"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@learnhub.local"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StoreDriver != "postgres" && AppConfig.StoreDriver != "mongo" {
		log.Fatalf("Unsupported STORE_DRIVER %q (expected postgres or mongo)", AppConfig.StoreDriver)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvDuration retrieves an environment variable as a duration ("168h", "30m")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}
