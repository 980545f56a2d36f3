package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sreekrishna-ayurveda/clinic-api/pkg/api"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/auth"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/clinic"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/common/config"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/common/database"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/common/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	if cfg.APIKey == "" {
		logger.Log.Warn("API_KEY is not set; every protected route will be rejected")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close(db)

	repo := clinic.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate clinic tables")
	}

	ctx := context.Background()
	patients, _ := repo.CountPatients(ctx)
	observations, _ := repo.CountObservations(ctx)
	logger.Log.WithFields(map[string]interface{}{
		"patients":     patients,
		"observations": observations,
	}).Info("store ready")

	svc := clinic.NewService(repo)
	handler := clinic.NewHTTPHandler(svc)
	gate := auth.NewGate(cfg.APIKey)

	router := api.NewRouter(api.Options{
		Gate:           gate,
		Records:        handler,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxRequestBody: cfg.MaxRequestBody,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ListenHost, cfg.ListenPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ListenHost,
			"port": cfg.ListenPort,
		}).Info("clinic API started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down clinic API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("clinic API stopped")
}
