package main

import (
	"context"
	"errors"
	"os"

	"github.com/yigit/unicampus/internal/app/repositories"
	"github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/bootstrap"
	"github.com/yigit/unicampus/internal/db"
	"github.com/yigit/unicampus/internal/pkg/logger"
)

// configEnv overrides the configuration file path
const configEnv = "UNICAMPUS_CONFIG"

func main() {
	ctx := context.Background()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(os.Getenv(configEnv))
	if err != nil {
		os.Exit(1)
	}

	database, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open database")
		os.Exit(1)
	}

	cli := &commandLine{
		db:  database,
		svc: services.NewServices(repositories.NewRepositories(database), nil),
		out: os.Stdout,
		lgr: lgr,
	}
	err = cli.run(ctx, os.Args)
	_ = database.Close()
	if err != nil {
		if !errors.Is(err, errHelp) {
			lgr.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
