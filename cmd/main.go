package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fitbridge/fitbridge-backend/internal/app"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("Server listening", "addr", a.Cfg.ListenAddr)
	if err := a.Run(a.Cfg.ListenAddr); err != nil {
		a.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
