package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"tailscale.com/tsnet"

	"github.com/claude/irontracker/internal/config"
	"github.com/claude/irontracker/internal/dashboard"
	"github.com/claude/irontracker/internal/metrics"
	"github.com/claude/irontracker/internal/server"
	"github.com/claude/irontracker/internal/storage"
	"github.com/claude/irontracker/internal/tracker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// .env is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("IronTracker starting", "version", Version, "driver", cfg.Database.Driver)
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn("failed to load .env", "error", envErr)
	}

	if *migrateOnly {
		if cfg.Database.Driver != storage.DriverPostgres {
			log.Info("migrate-only: nothing to do for driver", "driver", cfg.Database.Driver)
			return
		}
		if err := storage.RunMigrations(cfg.Database.DSN(), cfg.Database.Migrations); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrate-only: exiting")
		return
	}

	m := metrics.New()

	// Connect database
	ctx := context.Background()
	store, err := storage.Open(ctx, storage.Options{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN(),
		MigrationsPath: cfg.Database.Migrations,
		Path:           cfg.Database.Path,
	}, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	if pg, ok := store.(*storage.Postgres); ok {
		m.Registry.MustRegister(pg.Collector(cfg.Database.Name))
	}
	log.Info("database connected")

	svc := tracker.New(store, dashboard.NewCache(log, m), log)
	if err := svc.Load(ctx); err != nil {
		log.Error("failed to load history", "error", err)
		os.Exit(1)
	}

	srv := server.New(svc, m, cfg.Cache.SizeMB, cfg.Auth.APIKey, log)

	// Start server, tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr)
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
