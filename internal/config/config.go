package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI   string
	DBName     string
	Port       string
	CORSOrigin string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:   getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:     getEnvOrDefault("DB_NAME", "catalog"),
		Port:       getEnvOrDefault("PORT", "8080"),
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "*"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
