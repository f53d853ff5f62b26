/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the accounting time server: unit and period
  arithmetic over HTTP plus a persistent catalog of named periods.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (ACCTIME_*)
  2. Parse command-line flags (override port and database)
  3. Initialize SQLite store
  4. Create API handler and router
  5. Start the rolling period scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: ACCTIME_PORT or 8080)
  -db      SQLite database path (default: ACCTIME_DB or periods.db)
           Use ":memory:" for in-memory database

ENVIRONMENT:
  ACCTIME_PORT, ACCTIME_DB          Same as the flags
  ACCTIME_ALLOWED_ORIGINS           Comma-separated CORS origins
  ACCTIME_RATE_LIMIT                Requests per minute per IP (0 disables)
  ACCTIME_FISCAL_Q1                 Calendar quarter the fiscal year starts in
  ACCTIME_ROLLING_ENABLED           Keep rolling named periods current
  ACCTIME_ROLL_INTERVAL             How often rolling periods are checked
  ACCTIME_SHUTDOWN_TIMEOUT          Grace period for in-flight requests

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the rolling scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/periods.db"

  # Fiscal year starting in October, in-memory catalog
  ACCTIME_FISCAL_Q1=4 ./server -db=":memory:"

SEE ALSO:
  - config.go: Environment configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/accounting-time/api"
	"github.com/warp/accounting-time/store/sqlite"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler and router
	handler := api.NewHandler(store, cfg.FirstFiscalQuarter())
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
	})

	// Keep rolling periods current
	scheduler := api.NewRollingScheduler(store, cfg.FirstFiscalQuarter())
	scheduler.CheckInterval = cfg.RollInterval
	scheduler.Enabled = cfg.RollingEnabled
	scheduler.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[Server] Starting on http://localhost:%d (fiscal year starts in %s)", *port, cfg.FirstFiscalQuarter())
		log.Printf("[Server] API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[Server] Stopped")
}
