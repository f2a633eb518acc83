package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Slack
	SlackAccessToken string
	SlackAPIURL      string

	// Discord Bot
	DiscordToken string

	// Web Server
	WebBind string

	// Operator API
	JWTSecret string

	LogLevel string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		SlackAccessToken: os.Getenv("SLACK_ACCESS_TOKEN"),
		SlackAPIURL:      getEnvDefault("SLACK_API_URL", "https://slack.com/api"),
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		WebBind:          getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		JWTSecret:        getEnvDefault("JWT_SECRET", "dev-only-change-me"),
		LogLevel:         getEnvDefault("LOG_LEVEL", "info"),
	}

	if cfg.SlackAccessToken == "" && cfg.DiscordToken == "" {
		return nil, fmt.Errorf("SLACK_ACCESS_TOKEN or DISCORD_TOKEN is required")
	}

	return cfg, nil
}

func (c *Config) SlackEnabled() bool { return c.SlackAccessToken != "" }

func (c *Config) DiscordEnabled() bool { return c.DiscordToken != "" }

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
