/*
main.go - Application entry point

PURPOSE:
  Starts the charter pricing and reconciliation API server: loads
  configuration, opens the SQLite document store, wires the router, and
  handles graceful shutdown.

CONFIGURATION:
  Flags take precedence over environment variables; a .env file is
  loaded when present.
    -port / PORT            HTTP server port (default: 8080)
    -db / DB_PATH           SQLite database path (default: charter.db,
                            ":memory:" for in-memory)
    -log-level / LOG_LEVEL  zerolog level (default: info)
    -log-format / LOG_FORMAT  console or json (default: console)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  in-flight requests, close the database, exit.

SEE ALSO:
  - api/server.go: router configuration
  - store/sqlite: document store
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/justboats/charter-engine/api"
	"github.com/justboats/charter-engine/logger"
	"github.com/justboats/charter-engine/store/sqlite"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; environment wins silently when absent.
	_ = godotenv.Load()

	port := flag.String("port", envOr("PORT", "8080"), "HTTP server port")
	dbPath := flag.String("db", envOr("DB_PATH", "charter.db"), "SQLite database path")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "log level")
	logFormat := flag.String("log-format", envOr("LOG_FORMAT", "console"), "log format (console|json)")
	flag.Parse()

	if err := logger.Setup(logger.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup: %v\n", err)
		os.Exit(1)
	}

	st, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("failed to open store")
	}
	defer st.Close()

	handler := api.NewHandler(st)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
