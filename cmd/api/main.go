package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/database"
	"github.com/ideaforge/backend/internal/jobs"
	"github.com/ideaforge/backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if cfg.AppEnv == "development" {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("database initialization failed")
	}
	defer db.Close()

	scheduler := cron.New()
	reconciler := jobs.NewReconciler(db.GetDB())
	if err := reconciler.Schedule(scheduler, cfg.ReconcileSchedule); err != nil {
		log.WithError(err).Fatal("invalid reconcile schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(cfg, db)

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
