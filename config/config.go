package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings loaded from the environment
type Config struct {
	Addr         string
	Decks        int
	MinBet       int
	StartingBank int
	Debug        bool
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Addr:         ":7777",
		Decks:        6,
		MinBet:       10,
		StartingBank: 1000,
	}
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env values.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if addr := os.Getenv("BLACKJACK_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	var err error
	if cfg.Decks, err = intEnv("BLACKJACK_DECKS", cfg.Decks); err != nil {
		return cfg, err
	}
	if cfg.MinBet, err = intEnv("BLACKJACK_MIN_BET", cfg.MinBet); err != nil {
		return cfg, err
	}
	if cfg.StartingBank, err = intEnv("BLACKJACK_STARTING_BANK", cfg.StartingBank); err != nil {
		return cfg, err
	}

	if debug := os.Getenv("BLACKJACK_DEBUG"); debug != "" {
		if cfg.Debug, err = strconv.ParseBool(debug); err != nil {
			return cfg, fmt.Errorf("parse BLACKJACK_DEBUG: %w", err)
		}
	}

	if cfg.Decks < 1 {
		return cfg, fmt.Errorf("BLACKJACK_DECKS must be at least 1, got %d", cfg.Decks)
	}
	if cfg.MinBet < 1 {
		return cfg, fmt.Errorf("BLACKJACK_MIN_BET must be at least 1, got %d", cfg.MinBet)
	}
	if cfg.StartingBank < cfg.MinBet {
		return cfg, fmt.Errorf("BLACKJACK_STARTING_BANK must cover the minimum bet, got %d", cfg.StartingBank)
	}

	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
