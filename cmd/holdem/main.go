package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pokertown/holdem/internal/server"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	// Create and start holdem server
	holdemServer, err := server.NewHoldemServer()
	if err != nil {
		slog.Error("Failed to create holdem server", "error", err)
		os.Exit(1)
	}

	// Start server (blocks until shutdown)
	if err := holdemServer.Start(); err != nil {
		slog.Error("Failed to start holdem server", "error", err)
		os.Exit(1)
	}
}
