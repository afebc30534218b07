package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Database configuration
	DatabaseURL string

	// Economy configuration
	StartingBalance   int64
	DailyRewardAmount int64
	DailyCooldown     time.Duration

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Economy settings with defaults
		StartingBalance:   1000,
		DailyRewardAmount: 1000,
		DailyCooldown:     24 * time.Hour,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
	}
	if reward := os.Getenv("DAILY_REWARD_AMOUNT"); reward != "" {
		if parsedReward, err := strconv.ParseInt(reward, 10, 64); err == nil {
			config.DailyRewardAmount = parsedReward
		}
	}
	if hours := os.Getenv("DAILY_COOLDOWN_HOURS"); hours != "" {
		if parsedHours, err := strconv.Atoi(hours); err == nil && parsedHours > 0 {
			config.DailyCooldown = time.Duration(parsedHours) * time.Hour
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
