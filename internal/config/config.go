package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL      string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string

	// Redis
	RedisURL      string
	RedisPassword string

	// Server
	Port string

	// Action provider (automated players)
	AgentURL               string
	AgentTimeout           time.Duration
	AgentRequestsPerMinute float64
	AgentBurst             int
	AgentThinkDelay        time.Duration

	// Pause between a showdown and the next hand.
	ShowdownCooldown time.Duration
}

func Load() *Config {
	return &Config{
		// Environment
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Database
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "holdem"),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "holdem_user"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "holdem_password"),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),

		// Redis
		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// Server
		Port: getEnvOrDefault("PORT", "8080"),

		// Action provider
		AgentURL:               getEnvOrDefault("AGENT_URL", ""),
		AgentTimeout:           getEnvDuration("AGENT_TIMEOUT", 10*time.Second),
		AgentRequestsPerMinute: getEnvFloat("AGENT_REQUESTS_PER_MINUTE", 10),
		AgentBurst:             getEnvInt("AGENT_BURST", 2),
		AgentThinkDelay:        getEnvDuration("AGENT_THINK_DELAY", 1500*time.Millisecond),

		ShowdownCooldown: getEnvDuration("SHOWDOWN_COOLDOWN", 5*time.Second),
	}
}

func (c *Config) GetDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
