package main

import (
	"github.com/joho/godotenv"

	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn().Msg("no .env file found, using environment")
	}

	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}
