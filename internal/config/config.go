package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN       string
	RedisURL          string
	ServerPort        string
	BaseURL           string
	UploadDir         string
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	InquiryRecipient  string
	CategoryCacheTTL  int // seconds
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		DatabaseDSN:       getEnv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/trendovo?parseTime=true"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		JWTSecret:         getEnv("JWT_SECRET", "change_me_in_production"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@trendovo.pl"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPass:          getEnv("SMTP_PASS", ""),
		SMTPFrom:          getEnv("SMTP_FROM", "sklep@trendovo.pl"),
		InquiryRecipient:  getEnv("INQUIRY_RECIPIENT", "biuro@trendovo.pl"),
		CategoryCacheTTL:  getEnvAsInt("CATEGORY_CACHE_TTL", 600),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
