// Package main is the entry point for the TripIntel API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/tripintel/tripintel/internal/cache"
	"github.com/tripintel/tripintel/internal/config"
	"github.com/tripintel/tripintel/internal/geo"
	"github.com/tripintel/tripintel/internal/handler"
	"github.com/tripintel/tripintel/internal/middleware"
	"github.com/tripintel/tripintel/internal/service"
	"github.com/tripintel/tripintel/internal/session"
	"github.com/tripintel/tripintel/migrations"
)

// maxBodyBytes caps request bodies. Bulk updates are the largest payload and
// stay well under this for any realistic itinerary.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Geo providers ----------------------------------------------------
	nominatimBase := cfg.NominatimBaseURL
	if nominatimBase == "" {
		nominatimBase = geo.DefaultNominatimBaseURL
	}
	orsBase := cfg.ORSBaseURL
	if orsBase == "" {
		orsBase = geo.DefaultORSBaseURL
	}

	var geocoder geo.Geocoder = geo.NewNominatimGeocoder(nominatimBase)

	// The geocode cache is a provider-side optimization; a failure to open
	// it is fatal only because it points at a misconfiguration.
	if cfg.GeocacheDriver != config.GeocacheOff {
		db, err := openGeocacheDB(cfg)
		if err != nil {
			slog.Error("failed to open geocode cache", "driver", cfg.GeocacheDriver, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		geocoder = geo.NewCachedGeocoder(geocoder, cache.NewSQLGeocodeCache(db), logger)
		slog.Info("geocode cache enabled", "driver", cfg.GeocacheDriver)
	}

	orsRouter, err := geo.NewORSRouter(cfg.ORSAPIKey, orsBase)
	if err != nil {
		slog.Error("failed to create routing client", "error", err)
		os.Exit(1)
	}

	svc := service.NewItineraryService(
		session.NewStore(),
		geocoder,
		geo.NewResolver(orsRouter),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
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

	handler.NewServer(svc).Register(r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves headroom for the slowest path: an append that hits
	// both providers with retries.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openGeocacheDB opens the configured cache database and applies the
// embedded goose migrations.
func openGeocacheDB(cfg config.Config) (*sql.DB, error) {
	var dialect goose.Dialect
	switch cfg.GeocacheDriver {
	case config.GeocachePgx:
		dialect = goose.DialectPostgres
	default:
		dialect = goose.DialectSQLite3
		if dir := filepath.Dir(cfg.GeocacheDSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(cfg.GeocacheDriver, cfg.GeocacheDSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := provider.Up(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
