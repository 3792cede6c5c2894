// Command irontracker-mcp serves the training analytics over MCP on stdio.
// With -url it reads from a running irontracker server; otherwise it opens
// the configured store directly.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/irontracker/internal/config"
	"github.com/claude/irontracker/internal/dashboard"
	"github.com/claude/irontracker/internal/mcp"
	"github.com/claude/irontracker/internal/storage"
	"github.com/claude/irontracker/internal/tracker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remoteURL := flag.String("url", "", "base URL of an irontracker server (remote mode)")
	flag.Parse()

	_ = godotenv.Load()

	// stdout carries the protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remoteURL != "" {
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("remote mode", "url", *remoteURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

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

		svc := tracker.New(store, dashboard.NewCache(log, nil), log)
		if err := svc.Load(ctx); err != nil {
			log.Error("failed to load history", "error", err)
			os.Exit(1)
		}
		ds = mcp.NewLocal(svc)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
