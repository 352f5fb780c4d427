package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server  ServerConfig
	JWT     JWTConfig
	Storage StorageConfig
	Chat    ChatConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type StorageConfig struct {
	CloudName      string
	APIKey         string
	APISecret      string
	Bucket         string
	MaxUploadBytes int64
}

type ChatConfig struct {
	GeminiAPIKey string
	GeminiAPIURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-this-secret-before-deploying"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Storage: StorageConfig{
			CloudName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:         getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:      getEnv("CLOUDINARY_API_SECRET", ""),
			Bucket:         getEnv("STORAGE_BUCKET", "progress_photos"),
			MaxUploadBytes: getEnvAsInt64("STORAGE_MAX_UPLOAD_BYTES", 5*1024*1024),
		},
		Chat: ChatConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-pro:generateContent"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
