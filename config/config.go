package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds agent configuration
type Config struct {
	PollInterval time.Duration
	ExportDir    string
	Targets      []string
	DockerLookup bool
}

// Load reads config from .env or the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Parse interval, default 5 seconds
	intervalStr := os.Getenv("POLL_INTERVAL_SECONDS")
	interval, err := strconv.Atoi(intervalStr)
	if err != nil || interval < 1 {
		interval = 5
	}

	var targets []string
	for _, t := range strings.Split(getEnv("WATCH_TARGETS", ""), ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}

	return &Config{
		PollInterval: time.Duration(interval) * time.Second,
		ExportDir:    getEnv("EXPORT_DIR", "."),
		Targets:      targets,
		DockerLookup: getEnv("DOCKER_LOOKUP", "true") != "false",
	}
}

// getEnv fetches an env var with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
