package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/courseboard/server/internal/server"
	"github.com/courseboard/server/internal/server/config"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
