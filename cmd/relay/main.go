package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"page-relay/internal/di"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application runtime error: %v", err)
	}
}

func run() error {
	application, cleanup, err := di.InitializeApp()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
