package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/baraza/cliparse"
	"github.com/danielhkuo/baraza/db"
	"github.com/danielhkuo/baraza/gate"
	"github.com/danielhkuo/baraza/kvstore"
	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/portal"
	"github.com/danielhkuo/baraza/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the session store
	kv, closer, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("session store unavailable", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.Info("Session store ready", "type", cfg.DatabaseType)

	// Load the route table
	table := gate.Default()
	if cfg.RoutesFile != "" {
		table, err = gate.LoadFile(cfg.RoutesFile)
		if err != nil {
			slog.Error("route table invalid", "file", cfg.RoutesFile, "error", err)
			os.Exit(1)
		}
	}

	backend, err := portal.NewSimulatedBackend(cfg.SimulatedLatency)
	if err != nil {
		slog.Error("backend setup failed", "error", err)
		os.Exit(1)
	}

	reg := portal.NewRegistry(kv, table, backend, portal.Config{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		NoticeTTL:     cfg.NoticeTTL,
		SubmitTimeout: cfg.SubmitTimeout,
		IdleTTL:       cfg.WorkspaceTTL,
		Logger:        slog.Default(),
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	reg.StartSweeper(sweepCtx)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(router.NewRouter(reg)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "latency", cfg.SimulatedLatency)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore connects the key-value store selected by cfg.DatabaseType.
// The closer releases the underlying connection.
func openStore(ctx context.Context, cfg cliparse.Config) (kvstore.Store, io.Closer, error) {
	switch cfg.DatabaseType {
	case cliparse.StorageMemory:
		return kvstore.NewMemory(), nopCloser{}, nil

	case cliparse.StorageSQLite, cliparse.StoragePostgres:
		driver := db.DriverSQLite
		if cfg.DatabaseType == cliparse.StoragePostgres {
			driver = db.DriverPostgres
		}
		conn, err := db.Open(ctx, driver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return kvstore.NewSQL(conn, driver), conn, nil

	case cliparse.StorageRedis:
		r, err := kvstore.NewRedis(cfg.DatabaseURL, "baraza:")
		if err != nil {
			return nil, nil, err
		}
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, err
		}
		return r, r, nil
	}
	return nil, nil, fmt.Errorf("unknown storage type %q", cfg.DatabaseType)
}
