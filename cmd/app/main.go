package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}

	err = app.Run(ctx)
	// Close storage clients before exiting; log.Fatalf would skip a defer.
	cleanup()
	if err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
