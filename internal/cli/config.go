package cli

import (
	"os"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Timeout   time.Duration
}

// DefaultConfig returns a Config seeded from SCRABBLE_* environment variables
func DefaultConfig() *Config {
	timeout, err := time.ParseDuration(os.Getenv("SCRABBLE_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		ServerURL: getEnvOrDefault("SCRABBLE_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("SCRABBLE_OUTPUT", "text"),
		Timeout:   timeout,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
