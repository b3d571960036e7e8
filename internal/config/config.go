package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	// RepairSchedule is the cron expression for the dashboard
	// default-flag reconciliation job.
	RepairSchedule string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "crm-dashboards"),
		SkipAuth:       getEnv("SKIP_AUTH", "false") == "true",
		Environment:    getEnv("ENVIRONMENT", "development"),
		AppId:          getEnv("APP_ID", "crm-dashboards"),
		RepairSchedule: getEnv("REPAIR_SCHEDULE", "@hourly"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
