package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string // "development" or "production"
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	JWTSecret string
	JWTExpiry time.Duration

	// Shared secret for verifying payment provider webhook signatures
	PaymentWebhookSecret string

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	AdminEmail string
}

func Load() *Config {
	// .env is optional; real deployments set environment variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "production"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:          getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=shf port=5432 sslmode=disable"),
		CORSOrigins:          getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpiry:            getDuration("JWT_EXPIRY", 7*24*time.Hour),
		PaymentWebhookSecret: getEnv("FLUTTERWAVE_SECRET_KEY", ""),
		SMTPHost:             getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPass:             getEnv("SMTP_PASS", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "noreply@shfoundation.org"),
		AdminEmail:           getEnv("ADMIN_EMAIL", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment variable is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.PaymentWebhookSecret == "" {
		log.Println("[WARN] FLUTTERWAVE_SECRET_KEY is not set, payment webhooks will be rejected")
	}
	if cfg.SMTPUser == "" {
		log.Println("[WARN] SMTP_USER is not set, notification emails will fail")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] %s is not a valid duration (%q), using default %s", key, v, def)
		return def
	}
	return d
}
