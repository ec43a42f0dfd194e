package main

import (
	"log"
	"os"

	"github.com/eliaswen/goat/core/api"
	"github.com/eliaswen/goat/core/config"
	"github.com/eliaswen/goat/core/logging"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.String(config.KeyLogLevel)))

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	logger.Info("Starting server on %s", cfg.String(config.KeyServerAddress))
	if err := server.Run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
