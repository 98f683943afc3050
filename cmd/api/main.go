package main

import (
	"context"
	"flag"
	"os"

	"github.com/yigit/unicampus/internal/bootstrap"
	"github.com/yigit/unicampus/internal/pkg/logger"
	"github.com/yigit/unicampus/internal/server"
)

// @title UniCampus API
// @version 1.0
// @description Registry of faculties, promotions and students
// @BasePath /api/v1
// @schemes http https

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewServer(context.Background(), *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
