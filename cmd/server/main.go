package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/AHx92/my-workout-tracker/internal/buildinfo"
	"github.com/AHx92/my-workout-tracker/internal/logging"
	"github.com/AHx92/my-workout-tracker/internal/server"
	"github.com/AHx92/my-workout-tracker/internal/server/config"
	"github.com/AHx92/my-workout-tracker/internal/server/services"
)

func main() {

	cfg := config.LoadConfig()

	// -m prints a development token and exits without touching storage.
	if cfg.MintEmail != "" {
		token, err := services.NewAccessService(cfg).IssueToken(cfg.MintEmail)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(token)
		return
	}

	buildinfo.PrintBuildData(os.Stderr)

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stdout, cfg.LogLevel, logging.FormatJSON)
	if err != nil {
		return err
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
