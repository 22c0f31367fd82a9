package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Public base URL used when building share links, e.g. https://planpal.app
	AppBaseURL string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// SMS Configuration
	SMSAPIURL          string
	SMSAPIToken        string
	DefaultCountryCode string

	// Places / Weather providers
	PlacesAPIURL  string
	PlacesAPIKey  string
	WeatherAPIURL string
	WeatherAPIKey string
}

func Load() *Config {
	// Optional .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/planpal?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:3000"),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@planpal.app"),
		FromName:     getEnv("FROM_NAME", "PlanPal"),

		// SMS settings
		SMSAPIURL:          getEnv("SMS_API_URL", "https://api.sms-provider.example/v1/messages"),
		SMSAPIToken:        getEnv("SMS_API_TOKEN", ""),
		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "+1"),

		// Places / Weather settings
		PlacesAPIURL:  getEnv("PLACES_API_URL", "https://places.googleapis.com/v1/places:searchText"),
		PlacesAPIKey:  getEnv("PLACES_API_KEY", ""),
		WeatherAPIURL: getEnv("WEATHER_API_URL", "https://api.weatherapi.com/v1/current.json"),
		WeatherAPIKey: getEnv("WEATHER_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
