package config

import "time"

type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Mojang  MojangConfig
	Session SessionConfig
	Tokens  TokensConfig
	Bus     BusConfig
	Stats   StatsConfig
}

type HTTPConfig struct {
	Port    int
	APIBase string
}

type DBConfig struct {
	URL string
}

type MojangConfig struct {
	SessionURL string
	AccountURL string
}

type SessionConfig struct {
	// PublicKeyPath points at the PEM-encoded Yggdrasil session public key
	// used to verify signed texture payloads.
	PublicKeyPath string
}

type TokensConfig struct {
	// File is an optional YAML file mapping API tokens to permissions.
	File string
}

type BusConfig struct {
	// URL is an optional NATS endpoint; empty disables queue events.
	URL string
}

type StatsConfig struct {
	TTL             time.Duration
	RefreshInterval time.Duration
}
