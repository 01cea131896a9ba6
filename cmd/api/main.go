package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/SylvinIsamaza/lung-cancer/adapters/postgres/migrations"
	"github.com/SylvinIsamaza/lung-cancer/internal"
	"github.com/SylvinIsamaza/lung-cancer/internal/config"
	"github.com/SylvinIsamaza/lung-cancer/internal/container"
	"github.com/SylvinIsamaza/lung-cancer/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	c, err := container.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create container: %v", err)
	}
	defer c.Close()

	if err := c.InitWithDatabase(db); err != nil {
		log.Fatalf("failed to initialize database layer: %v", err)
	}
	if err := c.InitModel(); err != nil {
		log.Fatalf("failed to load classifier model: %v", err)
	}
	if err := c.InitServices(); err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}

	server := ui.NewServer(ui.Config{Port: cfg.Server.Port}, c.AuthService, c.PredictionService, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
