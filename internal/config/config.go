package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Capture  CaptureConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	// JWTSecret signs/verifies the service-role JWTs used by maintenance
	// endpoints. Interview host/candidate tokens are opaque and stored hashed.
	JWTSecret       string
	TokenExpiryDays int
}

type CaptureConfig struct {
	// Backend selects the server-side capture substrate: memory, file, redis.
	Backend         string
	Dir             string
	RedisTTLMinutes int
}

type APIKeys struct {
	DailyAPIKey   string
	DailyAPIURL   string
	VapiAPIKey    string
	VapiAPIURL    string
	VapiPublicKey string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", ""),
			TokenExpiryDays: getEnvAsInt("TOKEN_EXPIRY_DAYS", 7),
		},
		Capture: CaptureConfig{
			Backend:         getEnv("CAPTURE_BACKEND", "memory"),
			Dir:             getEnv("CAPTURE_DIR", "./capture"),
			RedisTTLMinutes: getEnvAsInt("CAPTURE_REDIS_TTL_MINUTES", 1440),
		},
		Keys: APIKeys{
			DailyAPIKey:   getEnv("DAILY_API_KEY", ""),
			DailyAPIURL:   getEnv("DAILY_API_URL", "https://api.daily.co/v1"),
			VapiAPIKey:    getEnv("VAPI_API_KEY", ""),
			VapiAPIURL:    getEnv("VAPI_API_URL", "https://api.vapi.ai"),
			VapiPublicKey: getEnv("VAPI_PUBLIC_KEY", ""),
		},
	}
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
