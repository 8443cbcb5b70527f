package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

func main() {
	log.SetHandler(cli.New(os.Stderr))

	config, err := parseConfig(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.WithError(err).Fatalf("unknown log level %q", config.LogLevel)
	}
	log.SetLevel(level)

	engine, seed, err := initializeGame(config)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize game")
	}
	displayGameInfo(config, engine, seed)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := runGame(ctx, engine, os.Stdout, config)
	if err != nil {
		log.WithError(err).Fatal("game loop failed")
	}

	log.WithFields(log.Fields{
		"generations":        stats.TotalGenerations,
		"runtime":            stats.Runtime().Round(time.Millisecond).String(),
		"average_population": stats.AveragePopulation,
	}).Info("shutting down")
}
