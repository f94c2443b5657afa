package main

import (
	"flag"
	"os"

	"github.com/postigiusti/bacheca/internal/bootstrap"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	pgdb, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up database")
		os.Exit(1)
	}
	defer pgdb.Close()

	deps, err := bootstrap.BuildDependencies(cfg, pgdb)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dependencies")
		os.Exit(1)
	}

	router := bootstrap.SetupRouter(deps)

	srv := server.New(cfg.Server.Port, router)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
