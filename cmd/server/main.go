package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/identity-service/internal/app"
	"github.com/skillsenselab/identity-service/internal/config"
	"github.com/skillsenselab/identity-service/internal/database"
	"github.com/skillsenselab/identity-service/internal/logger"
	"github.com/skillsenselab/identity-service/internal/observability"
	"github.com/skillsenselab/identity-service/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config may itself be broken; write plainly and die.
		logger.NewDefault(config.ServiceName).Fatal("Invalid configuration",
			logger.Fields("error", err.Error()))
	}

	log := logger.New(&cfg.Log, config.ServiceName)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Init(ctx, config.ServiceName, cfg.Observability, log)
	if err != nil {
		log.Fatal("Telemetry init failed", logger.ErrorFields("observability.init", err))
	}
	defer func() { _ = shutdownTelemetry(context.Background()) }()

	db, err := database.New(cfg.Database, log)
	if err != nil {
		log.Fatal("Database connection failed", logger.ErrorFields("database.new", err))
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(&user.User{}); err != nil {
		log.Fatal("Migration failed", logger.ErrorFields("database.migrate", err))
	}

	store := user.NewGormStore(db.Gorm)

	a, err := app.New(cfg, log, store, db.Ping)
	if err != nil {
		log.Fatal("App init failed", logger.ErrorFields("app.new", err))
	}

	if err := a.Run(ctx); err != nil {
		log.Fatal("Server exited with error", logger.ErrorFields("app.run", err))
	}
}
