// main is the entry point of the Alumni API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Pick the data source (delimited text file or SQLite)
//  4. Register all HTTP routes and middleware
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/alumni-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/alumni-api
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

	"github.com/aanand-mishra/alumni-api/internal/config"
	"github.com/aanand-mishra/alumni-api/internal/http/handlers/alumni"
	"github.com/aanand-mishra/alumni-api/internal/http/handlers/health"
	"github.com/aanand-mishra/alumni-api/internal/http/middleware"
	"github.com/aanand-mishra/alumni-api/internal/sorting"
	"github.com/aanand-mishra/alumni-api/internal/storage"
	"github.com/aanand-mishra/alumni-api/internal/storage/csvfile"
	"github.com/aanand-mishra/alumni-api/internal/storage/sqlite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// SetDefault routes the package-level slog calls in the handlers
	// through the same handler.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting alumni-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Nothing is opened here. Each request opens, reads and closes the
	// source on its own, so a missing file is not a startup error.
	store := newStorage(cfg.Source)

	defaultSort, err := sorting.ParseSelector(cfg.DefaultSort)
	if err != nil {
		log.Error("invalid default sort", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.Source.Driver),
		slog.String("path", cfg.Source.Path),
		slog.String("default_sort", defaultSort.String()))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   GET /alumni         → sorted (and optionally filtered) list
	//   GET /alumni/stats   → summary of one parse pass
	//   GET /healthz        → liveness
	router := http.NewServeMux()

	router.HandleFunc("GET /alumni", alumni.GetList(store, defaultSort))
	router.HandleFunc("GET /alumni/stats", alumni.GetStats(store))
	router.HandleFunc("GET /healthz", health.Get())

	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.CORS.AllowedOrigins
	}

	handler := middleware.Chain(
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.CORS(cors),
	)(router)

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected; we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newStorage returns the backend selected by src.Driver. The config
// validator has already restricted Driver to the known values.
func newStorage(src config.Source) storage.Storage {
	switch src.Driver {
	case config.DriverSQLite:
		return sqlite.New(src.Path)
	default:
		return csvfile.New(src.Path)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
