package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/flagx"
	"github.com/AHx92/my-workout-tracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// timex.Duration, so "3s" and integer nanoseconds are both accepted.
type JsonConfig struct {
	APIURL              string         `json:"api_url"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	AccessToken         string         `json:"access_token"`
	ProbeMode           string         `json:"probe_mode"`
	HealthAddr          string         `json:"health_addr"`
	RetryBaseDelay      timex.Duration `json:"retry_base_delay"`
	RetryMaxDelay       timex.Duration `json:"retry_max_delay"`
	RetryMaxAttempts    *uint64        `json:"retry_max_attempts"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Keys absent
// from the file keep their current values. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.ProbeMode, jc.ProbeMode)
	setString(&cfg.HealthAddr, jc.HealthAddr)
	setString(&cfg.LogLevel, jc.LogLevel)

	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.RetryBaseDelay, jc.RetryBaseDelay)
	setDuration(&cfg.RetryMaxDelay, jc.RetryMaxDelay)

	if jc.RetryMaxAttempts != nil {
		cfg.RetryMaxAttempts = *jc.RetryMaxAttempts
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
