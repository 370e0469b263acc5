package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC health bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN, empty for in-memory storage
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-e string   comma-separated list of approved emails
//	-l string   log level
//	-m string   print an access token for this email and exit
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-e", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the API")
	fs.StringVar(&config.HealthAddr, "g", config.HealthAddr, "address and port of the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	allowed := fs.String("e", strings.Join(config.AllowedEmails, ","), "approved emails, comma separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.MintEmail, "m", config.MintEmail, "print a token for this email and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.AllowedEmails = splitEmails(*allowed)
}

func splitEmails(s string) []string {
	var out []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, strings.ToLower(e))
		}
	}
	return out
}
