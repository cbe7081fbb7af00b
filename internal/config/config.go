package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// loads .env into the environment if present
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Server      ServerConfig
	Logs        LogConfig
	Game        GameConfig
	Matchmaking MatchmakingConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

type GameConfig struct {
	ClockTime time.Duration
}

type MatchmakingConfig struct {
	Interval time.Duration
}

func LoadConfig() (*Config, error) {
	clockSeconds, err := intFromEnv("CLOCK_SECONDS", 600)
	if err != nil {
		return nil, err
	}
	intervalMS, err := intFromEnv("MATCHMAKING_INTERVAL_MS", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           stringFromEnv("PORT", "3000"),
			AllowedOrigins: splitList(stringFromEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Logs: LogConfig{
			Level: strings.ToLower(stringFromEnv("LOG_LEVEL", "info")),
		},
		Game: GameConfig{
			ClockTime: time.Duration(clockSeconds) * time.Second,
		},
		Matchmaking: MatchmakingConfig{
			Interval: time.Duration(intervalMS) * time.Millisecond,
		},
	}
	return cfg, nil
}

func stringFromEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
