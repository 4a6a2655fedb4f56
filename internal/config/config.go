package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the dial service.
type Config struct {
	ListenAddr      string
	FREDAPIKey      string
	OutputPath      string
	RefreshSchedule string
	LogLevel        string
	TuningPath      string
	StaticDataPath  string
	RefreshTimeout  int
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:      getEnv("DIALS_LISTEN_ADDR", ":8080"),
		FREDAPIKey:      getEnv("FRED_API_KEY", ""),
		OutputPath:      getEnv("DIALS_OUTPUT", "public/indicators.json"),
		RefreshSchedule: getEnv("DIALS_REFRESH_CRON", "0 6 * * *"),
		LogLevel:        getEnv("DIALS_LOG_LEVEL", "info"),
		TuningPath:      getEnv("DIALS_TUNING", ""),
		StaticDataPath:  getEnv("DIALS_STATIC_DATA", ""),
		RefreshTimeout:  120,
	}

	if timeout := os.Getenv("DIALS_REFRESH_TIMEOUT_S"); timeout != "" {
		if _, err := fmt.Sscanf(timeout, "%d", &cfg.RefreshTimeout); err != nil {
			return Config{}, fmt.Errorf("parse DIALS_REFRESH_TIMEOUT_S: %w", err)
		}
	}
	if cfg.RefreshTimeout <= 0 {
		return Config{}, fmt.Errorf("DIALS_REFRESH_TIMEOUT_S must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
