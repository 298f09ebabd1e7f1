package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/kanaflash/internal/api"
	"github.com/vytor/kanaflash/internal/config"
	"github.com/vytor/kanaflash/internal/db"
	"github.com/vytor/kanaflash/internal/jobs"
	"github.com/vytor/kanaflash/internal/loader"
	"github.com/vytor/kanaflash/internal/logger"
	"github.com/vytor/kanaflash/internal/repository/sqlite"
	"github.com/vytor/kanaflash/internal/services"
	"github.com/vytor/kanaflash/internal/session"
	"github.com/vytor/kanaflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("KanaFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("web_dir=%s", cfg.WebDir)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("data_base_url=%s", cfg.DataBaseURL)
	log.Debug("datasets=%v", cfg.Datasets.Names())
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_capacity=%d", cfg.SessionCapacity)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("fetch_timeout_seconds=%d", cfg.FetchTimeoutSeconds)

	// Character catalog lives in memory only.
	catalog, err := db.OpenMemory()
	if err != nil {
		log.Error("failed to open catalog: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing catalog")
		catalog.Close()
	}()

	dataLoader := loader.New(loader.NewSource(
		cfg.DataDir,
		cfg.DataBaseURL,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
	))
	characterRepo := sqlite.NewCharacterRepository(catalog.DB)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importQueue := jobs.NewWorkerQueue(importPool, dataLoader, characterRepo)

	rand := services.NewRandFactory(cfg.ShuffleSeed)
	srv := &api.Server{
		FlashcardService: services.NewFlashcardService(
			dataLoader,
			cfg.Datasets,
			services.NewRegistry[*session.Flashcard]("flashcard session", cfg.SessionCapacity),
			rand,
		),
		QuizService: services.NewQuizService(
			dataLoader,
			services.NewRegistry[*session.MultipleChoice]("quiz session", cfg.SessionCapacity),
			rand,
		),
		CatalogService: services.NewCatalogService(characterRepo, importQueue, cfg.Datasets),
		DB:             catalog.DB,
		Imports:        importPool,
		Web:            os.DirFS(cfg.WebDir),
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	for _, name := range cfg.Datasets.Names() {
		if err := importQueue.EnqueueImport(name); err != nil {
			log.Warn("failed to queue import for %s: %v", name, err)
		}
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Info("===========================================")
	log.Info("KanaFlash Server Stopped")
	log.Info("===========================================")
}
