// Package config loads runtime configuration for the workout tracker client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://example.com/api",
//	  "database_path": "workouts.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "30s",
//	  "probe_mode": "http",
//	  "retry_base_delay": "2s",
//	  "retry_max_delay": "2m",
//	  "retry_max_attempts": 5,
//	  "log_level": "info"
//	}
//
// The package does not read environment variables.
package config
