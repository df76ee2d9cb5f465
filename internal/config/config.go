package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Extraction ExtractionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret     string
	JwtTTLMinutes int
}

type ExtractionConfig struct {
	AddDebugObjects        bool
	EvaluationTopic        string // in-process queue behind POST /data/v1
	CrawlerDataDir         string
	IdentityLockBackend    string // "local" or "redis"
	IdentityLockTTLSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "cme.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:     getEnv("JWT_SECRET", ""),
			JwtTTLMinutes: getEnvAsInt("JWT_TTL_MINUTES", 60),
		},
		Extraction: ExtractionConfig{
			AddDebugObjects:        getEnvAsBool("ADD_DEBUG_OBJECTS", false),
			EvaluationTopic:        getEnv("EVALUATION_TOPIC", "EVALUATE_SESSIONS"),
			CrawlerDataDir:         getEnv("CRAWLER_DATA_DIR", "./data/crawler"),
			IdentityLockBackend:    getEnv("IDENTITY_LOCK_BACKEND", "local"),
			IdentityLockTTLSeconds: getEnvAsInt("IDENTITY_LOCK_TTL_SECONDS", 10),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
