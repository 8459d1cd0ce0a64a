package main

import (
	"flag"
	"log"
	"os"

	"TickLens/internal/di"
	"TickLens/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if cfg.Alpaca.KeyID == "" || cfg.Alpaca.SecretKey == "" {
		log.Printf("alpaca credentials not set; set ALPACA_KEY_ID and ALPACA_SECRET_KEY env vars")
	}

	log.Printf("env=%s port=%d upstream=%s", cfg.Environment, cfg.Server.Port, cfg.Alpaca.BaseURL)

	// Wire DI: initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
