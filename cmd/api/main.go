package main

import (
	"os"

	"github.com/yigit/collegepredictor/internal/pkg/logger"
	"github.com/yigit/collegepredictor/internal/server"
)

// @title College Predictor API
// @version 1.0
// @description Matches students to eligible colleges from historical admission cutoffs
// @BasePath /
// @schemes http https

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	srv, err := server.NewServer(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
