// Package main is the entry point for the Wedding Timeline Builder API
// server. Its sole responsibility is wiring dependencies together and
// starting the server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/mediapotion/timeline-builder/internal/catalog"
	"github.com/mediapotion/timeline-builder/internal/config"
	"github.com/mediapotion/timeline-builder/internal/handler"
	"github.com/mediapotion/timeline-builder/internal/middleware"
	"github.com/mediapotion/timeline-builder/internal/service"
	"github.com/mediapotion/timeline-builder/internal/store"
)

// maxBodyBytes caps incoming request bodies. The largest legitimate
// payload is an uploaded project document, well under a megabyte.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg := config.Load()

	// --- Logger -----------------------------------------------------------
	// log/slog with the JSON handler writes machine-readable output
	// suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Catalog ----------------------------------------------------------
	cat := catalog.Builtin()
	if cfg.CatalogFile != "" {
		var err error
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			slog.Error("failed to load catalog file", "path", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
		slog.Info("catalog loaded", "path", cfg.CatalogFile, "entries", len(cat.Entries()))
	}

	// --- Services ---------------------------------------------------------
	docs := store.NewFileStore(afero.NewOsFs(), cfg.DataDir)
	sessions := service.NewSessionService(docs)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body cap.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	srv := handler.NewServer(sessions, cat, logger)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
