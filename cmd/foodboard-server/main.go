package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jask/foodboard/internal/config"
	"github.com/jask/foodboard/internal/database"
	"github.com/jask/foodboard/internal/database/repository"
	"github.com/jask/foodboard/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrationsWithDB(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.Database.Seed {
		if err := database.SeedDefaults(ctx, db); err != nil {
			log.Fatalf("seed defaults: %v", err)
		}
	}

	e := server.New(repository.NewFoodRepo(db), cfg.Server.LogLevel)

	go func() {
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Errorf("shutdown: %v", err)
	}
}
