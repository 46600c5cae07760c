package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/bddgen/internal/api"
	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/config"
	"github.com/dgallion1/bddgen/internal/extract"
	"github.com/dgallion1/bddgen/internal/pipeline"
	"github.com/dgallion1/bddgen/internal/segment"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.Error("failed to load pattern catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
	}
	seg, err := segment.New()
	if err != nil {
		log.Error("failed to load sentence tokenizer", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cat, seg, pipeline.Options{
		WorkerCount:     cfg.WorkerCount,
		Extract:         extract.Options{PDFFallback: cfg.PDFFallbackPdftotext},
		DefaultLanguage: cfg.DefaultLanguage,
		StatsWindow:     cfg.StatsWindow,
	}, log)

	srv := api.NewServer(p, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting bddgen", "port", cfg.Port, "workers", cfg.WorkerCount, "catalog", cfg.CatalogPath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
