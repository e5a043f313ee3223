package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	Port               string
	Env                string
	WAHABaseURL        string
	WAHAAPIKey         string
	WAHASessionID      string
	MerchantPhone      string
	DigestSchedule     string
	AnalysisWindowDays int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		WAHABaseURL:        os.Getenv("WAHA_BASE_URL"),
		WAHAAPIKey:         os.Getenv("WAHA_API_KEY"),
		WAHASessionID:      os.Getenv("WAHA_SESSION_ID"),
		MerchantPhone:      os.Getenv("MERCHANT_PHONE"),
		DigestSchedule:     os.Getenv("DIGEST_SCHEDULE"),
		AnalysisWindowDays: envInt("ANALYSIS_WINDOW_DAYS", 90),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.WAHASessionID == "" {
		cfg.WAHASessionID = "default"
	}
	if cfg.DigestSchedule == "" {
		cfg.DigestSchedule = "0 7 * * *" // daily at 7 AM
	}

	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️ Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}
