package cli

import (
	"os"
	"time"
)

// Config holds CLI configuration. Flags override the FANTASTA_* environment.
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
	Timeout   time.Duration
}

// DefaultConfig returns a Config seeded from the environment
func DefaultConfig() *Config {
	timeout := 30 * time.Second
	if d, err := time.ParseDuration(os.Getenv("FANTASTA_TIMEOUT")); err == nil && d > 0 {
		timeout = d
	}
	return &Config{
		ServerURL: getEnvOrDefault("FANTASTA_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("FANTASTA_OUTPUT", "text"),
		Timeout:   timeout,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
