package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	vars := []string{
		"DATABASE_URL", "PORT", "ENV", "WAHA_BASE_URL", "WAHA_API_KEY",
		"WAHA_SESSION_ID", "MERCHANT_PHONE", "DIGEST_SCHEDULE", "ANALYSIS_WINDOW_DAYS",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "default", cfg.WAHASessionID)
	assert.Equal(t, "0 7 * * *", cfg.DigestSchedule)
	assert.Equal(t, 90, cfg.AnalysisWindowDays)
}

func TestLoadConfigFromEnv(t *testing.T) {
	values := map[string]string{
		"PORT":                 "9090",
		"ENV":                  "production",
		"WAHA_BASE_URL":        "http://waha:3000",
		"MERCHANT_PHONE":       "628123456789",
		"ANALYSIS_WINDOW_DAYS": "30",
	}
	for k, v := range values {
		os.Setenv(k, v)
	}
	defer func() {
		for k := range values {
			os.Unsetenv(k)
		}
	}()

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "http://waha:3000", cfg.WAHABaseURL)
	assert.Equal(t, "628123456789", cfg.MerchantPhone)
	assert.Equal(t, 30, cfg.AnalysisWindowDays)
}

func TestLoadConfigRejectsBadWindow(t *testing.T) {
	os.Setenv("ANALYSIS_WINDOW_DAYS", "-5")
	defer os.Unsetenv("ANALYSIS_WINDOW_DAYS")

	cfg := LoadConfig()

	assert.Equal(t, 90, cfg.AnalysisWindowDays)
}
