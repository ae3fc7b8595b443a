package config

import (
	"os"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	DatabaseURL string

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// Document storage
	DocumentsDir string

	// Web push (VAPID key pair)
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string
}

// Load reads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", "handyconnect.db"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    24 * time.Hour,

		DocumentsDir: getEnv("DOCUMENTS_DIR", "./documents"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    getEnv("VAPID_SUBJECT", "mailto:support@handyconnect.app"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "HandyConnect"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
