package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/server"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using defaults")
	}

	cfgPath := os.Getenv("OAR_CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	srv := server.New(cfg, logger)
	logger.Info().Str("port", cfg.Server.Port).Msg("starting dashboard API")
	if err := srv.SetupRouter().Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
