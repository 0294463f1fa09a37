package main

import (
	"context"
	"log"

	"outlierscope/adapters/postgres"
	"outlierscope/internal"
	"outlierscope/internal/config"
	"outlierscope/ui"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var store ui.ReportStore
	if cfg.PersistenceEnabled() {
		repo, err := postgres.Connect(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Fatalf("report store: %v", err)
		}
		defer repo.Close()
		store = repo
		logger.Info("report store connected")
	} else {
		logger.Info("DATABASE_URL not set, running without report store")
	}

	server := ui.NewServer(cfg, store, logger)
	if err := server.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
