// Package config handles configuration for the reference backend, including
// defaults, JSON overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the reference backend.
//
// Fields:
//   - HTTPAddr: bind address of the JSON API.
//   - HealthAddr: bind address of the gRPC health service.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps data in memory.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - TokenValidityDuration: lifetime of issued tokens.
//   - AllowedEmails: emails approved by checkUserAccess. Empty approves all.
//   - MintEmail: when set, the binary prints a token for it and exits.
type Config struct {
	HTTPAddr              string
	HealthAddr            string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	AllowedEmails         []string
	LogLevel              string
	MintEmail             string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.HealthAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.AllowedEmails = nil
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
