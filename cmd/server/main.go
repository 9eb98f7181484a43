/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the HR desk server. Handles configuration,
  dependency wiring, optional persistence, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and load the optional YAML config
  2. Build the logger
  3. Open SQLite (when configured) and restore prior state
  4. Wire the tool service and registry
  5. Seed demo data (unless disabled or state was restored)
  6. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to a YAML config file (optional)
  -addr    HTTP listen address (overrides config)
  -db      SQLite database path (overrides config; empty = volatile)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  # Volatile, seeded demo instance
  ./server

  # Durable instance
  ./server -db=./data/hrdesk.db

  # Full config file
  ./server -config=./hrdesk.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: YAML configuration
  - store/sqlite/sqlite.go: Persistence
*/
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/veltrix/hr-desk/api"
	"github.com/veltrix/hr-desk/config"
	"github.com/veltrix/hr-desk/directory"
	"github.com/veltrix/hr-desk/leave"
	"github.com/veltrix/hr-desk/logging"
	"github.com/veltrix/hr-desk/mail"
	"github.com/veltrix/hr-desk/meeting"
	"github.com/veltrix/hr-desk/store/sqlite"
	"github.com/veltrix/hr-desk/ticket"
	"github.com/veltrix/hr-desk/tools"
)

func main() {
	configPath := flag.String("config", "", "YAML config file path")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fatal("build logger", err)
	}
	defer log.Sync()

	ctx := context.Background()

	// Optional persistence. The in-memory components stay authoritative;
	// SQLite journals mutations and restores state across restarts.
	var (
		store    *sqlite.Store
		ledger   *leave.Ledger
		dir      = directory.New()
		tracker  = ticket.NewTracker()
		restored bool
	)
	if cfg.DBPath != "" {
		store, err = sqlite.New(cfg.DBPath)
		if err != nil {
			log.Fatal("open database", zap.String("path", cfg.DBPath), zap.Error(err))
		}
		defer store.Close()

		snapshot, err := store.LoadLedger(ctx)
		if err != nil {
			log.Fatal("load ledger", zap.Error(err))
		}
		ledger = leave.NewLedgerFromSnapshot(snapshot, leave.WithJournal(store))

		employees, err := store.LoadEmployees(ctx)
		if err != nil {
			log.Fatal("load employees", zap.Error(err))
		}
		for _, e := range employees {
			if err := dir.Add(e); err != nil {
				log.Fatal("restore employee", zap.String("employee_id", e.ID), zap.Error(err))
			}
		}

		tickets, err := store.LoadTickets(ctx)
		if err != nil {
			log.Fatal("load tickets", zap.Error(err))
		}
		tracker.Restore(tickets)

		restored = len(employees) > 0
		log.Info("state restored",
			zap.Int("employees", len(employees)),
			zap.Int("accounts", len(snapshot.Accounts)),
			zap.Int("tickets", len(tickets)))
	} else {
		ledger = leave.NewLedger()
	}

	svc := tools.NewService(dir, ledger, meeting.NewBook(), tracker, mail.NewSender(cfg.SMTP, log), log)
	if store != nil {
		svc.AttachArchive(store)
	}

	// Demo data only on a fresh instance.
	if cfg.Seed && !restored {
		if err := api.Seed(ctx, svc); err != nil {
			log.Fatal("seed demo data", zap.Error(err))
		}
		log.Info("demo data seeded")
	}

	registry := tools.NewRegistry(svc, log)
	router := api.NewRouter(api.NewHandler(svc, registry, log))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

// fatal reports errors raised before the logger exists.
func fatal(msg string, err error) {
	os.Stderr.WriteString(msg + ": " + err.Error() + "\n")
	os.Exit(1)
}
