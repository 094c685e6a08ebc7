package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func Load() (Config, error) {
	cfg := Config{}

	cfg.DB.URL = os.Getenv("SKINDB_DATABASE_URL")
	if cfg.DB.URL == "" {
		return Config{}, fmt.Errorf("SKINDB_DATABASE_URL is required")
	}

	cfg.HTTP.Port = getEnvInt("SKINDB_HTTP_PORT", 8080)
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return Config{}, fmt.Errorf("SKINDB_HTTP_PORT is outside the valid range 1-65535")
	}
	cfg.HTTP.APIBase = strings.TrimRight(getEnv("SKINDB_API_BASE", "https://api.skindb.net"), "/")

	cfg.Mojang.SessionURL = getEnv("SKINDB_MOJANG_SESSION_URL", "https://sessionserver.mojang.com")
	cfg.Mojang.AccountURL = getEnv("SKINDB_MOJANG_ACCOUNT_URL", "https://api.mojang.com")

	cfg.Session.PublicKeyPath = os.Getenv("SKINDB_SESSION_PUBKEY")
	if cfg.Session.PublicKeyPath == "" {
		return Config{}, fmt.Errorf("SKINDB_SESSION_PUBKEY is required")
	}

	cfg.Tokens.File = os.Getenv("SKINDB_TOKENS_FILE")
	cfg.Bus.URL = os.Getenv("SKINDB_NATS_URL")

	var err error
	cfg.Stats.TTL, err = getEnvDuration("SKINDB_STATS_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.Stats.RefreshInterval, err = getEnvDuration("SKINDB_STATS_REFRESH", 14*time.Minute)
	if err != nil {
		return Config{}, err
	}
	if cfg.Stats.RefreshInterval >= cfg.Stats.TTL {
		return Config{}, fmt.Errorf("SKINDB_STATS_REFRESH must be shorter than SKINDB_STATS_TTL")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
