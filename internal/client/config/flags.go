package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     backend API URL
//	-d string     local database file
//	-i int        online check interval in seconds
//	-t duration   request timeout
//	-k string     bearer token
//	-p string     connectivity probe: http or grpc
//	-g string     address of the backend gRPC health service
//	-l string     log level
//	-rb duration  base delay between automatic sync retries
//	-rm duration  maximum delay between automatic sync retries
//	-rn uint      automatic sync retries in a row (0 disables)
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// loaders (such as -c) do not break parsing. Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t", "-k", "-p", "-g", "-l", "-rb", "-rm", "-rn"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend API URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.AccessToken, "k", cfg.AccessToken, "bearer token")
	fs.StringVar(&cfg.ProbeMode, "p", cfg.ProbeMode, "connectivity probe: http or grpc")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "address of the backend gRPC health service")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.RetryBaseDelay, "rb", cfg.RetryBaseDelay, "base delay between automatic sync retries")
	fs.DurationVar(&cfg.RetryMaxDelay, "rm", cfg.RetryMaxDelay, "maximum delay between automatic sync retries")
	fs.Uint64Var(&cfg.RetryMaxAttempts, "rn", cfg.RetryMaxAttempts, "automatic sync retries in a row")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})

	if cfg.ProbeMode != ProbeHTTP && cfg.ProbeMode != ProbeGRPC {
		panic(fmt.Sprintf("unknown probe mode %q", cfg.ProbeMode))
	}
}
