package config

import "time"

const (
	ProbeHTTP = "http"
	ProbeGRPC = "grpc"
)

// Config holds runtime settings for the workout tracker client.
//
// Fields:
//   - APIURL: backend endpoint; the action is passed as a query parameter.
//   - DatabasePath: SQLite file of the local store.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - RequestTimeout: upper bound for one backend call.
//   - AccessToken: bearer token; overrides a token saved with `token`.
//   - ProbeMode: "http" (HEAD on APIURL) or "grpc" (health service at HealthAddr).
//   - RetryBaseDelay, RetryMaxDelay, RetryMaxAttempts: backoff between
//     automatic sync passes after failures. Zero attempts disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL              string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	AccessToken         string
	ProbeMode           string
	HealthAddr          string
	RetryBaseDelay      time.Duration
	RetryMaxDelay       time.Duration
	RetryMaxAttempts    uint64
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8080/api"
	c.DatabasePath = "workouts.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.AccessToken = ""
	c.ProbeMode = ProbeHTTP
	c.HealthAddr = "127.0.0.1:50051"
	c.RetryBaseDelay = 2 * time.Second
	c.RetryMaxDelay = 2 * time.Minute
	c.RetryMaxAttempts = 5
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
