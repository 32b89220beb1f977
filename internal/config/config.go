package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the process configuration, loaded once at startup.
type Config struct {
	BindPorts   []string // candidate listen ports, tried in order
	DatabaseURL string
	Environment string
	LogLevel    string

	JWTSecret        string
	OpenRegistration bool

	AdminIdentifier  string
	AdminPassword    string
	TesterIdentifier string
	TesterPassword   string
}

// Load reads configuration from the environment, with .env as a convenience
// overlay for development. Returns an error when a required value is missing
// or malformed; the server refuses to start rather than run half-configured.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := &Config{
		BindPorts:   splitPorts(getEnv("BIND_PORTS", "8080")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		OpenRegistration: getEnv("OPEN_REGISTRATION", "true") == "true",

		AdminIdentifier:  os.Getenv("ADMIN_IDENTIFIER"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		TesterIdentifier: os.Getenv("TESTER_IDENTIFIER"),
		TesterPassword:   os.Getenv("TESTER_PASSWORD"),
	}

	if len(cfg.BindPorts) == 0 {
		return nil, fmt.Errorf("BIND_PORTS must name at least one port")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(cfg.JWTSecret))
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitPorts(value string) []string {
	var ports []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ports = append(ports, p)
		}
	}
	return ports
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
