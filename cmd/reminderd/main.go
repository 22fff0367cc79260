package main

// Standalone reminder poller. The API process runs the same poller
// in-process; deploy this binary instead when email sending should not
// share a process with request handling.

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"warranty-backend/internal/bootstrap"
	"warranty-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	if app.DB == nil {
		log.Fatal("reminderd needs DATABASE_URL; in-memory reminders die with the process")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("reminder poller running every %s", cfg.PollInterval)
	app.Poller.Run(ctx)

	if err := app.DB.Close(); err != nil {
		log.Printf("db close: %v", err)
	}
}
