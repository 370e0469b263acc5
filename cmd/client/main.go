package main

import (
	"context"
	"log"
	"os"

	"github.com/AHx92/my-workout-tracker/internal/buildinfo"
	"github.com/AHx92/my-workout-tracker/internal/client/cli"
	"github.com/AHx92/my-workout-tracker/internal/client/config"
	"github.com/AHx92/my-workout-tracker/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel, logging.FormatText)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped", "error", err)
	}

}
