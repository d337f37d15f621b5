package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/loadstack/mongotap/internal/cli"
	"github.com/loadstack/mongotap/pkg/logger"
)

func main() {
	envLoaded := godotenv.Load() == nil

	if err := logger.Setup(os.Getenv("MONGOTAP_DEBUG") != "", os.Getenv("MONGOTAP_LOG_FILE")); err != nil {
		log.Error().Err(err).Msg("failed to set up logging")
		os.Exit(1)
	}
	if !envLoaded {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
