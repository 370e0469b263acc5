package config

import (
	"encoding/json"
	"os"

	"github.com/AHx92/my-workout-tracker/internal/flagx"
	"github.com/AHx92/my-workout-tracker/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file.
type JsonConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	HealthAddr            string         `json:"health_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	AllowedEmails         []string       `json:"allowed_emails"`
	LogLevel              string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, over cfg. Keys that
// are absent keep their current values. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		cfg.HTTPAddr = c.HTTPAddr
	}
	if c.HealthAddr != "" {
		cfg.HealthAddr = c.HealthAddr
	}
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.AllowedEmails != nil {
		cfg.AllowedEmails = c.AllowedEmails
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}
