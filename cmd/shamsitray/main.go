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

	"github.com/shamsitray/shamsitray/internal/clock"
	"github.com/shamsitray/shamsitray/internal/commands"
	"github.com/shamsitray/shamsitray/internal/config"
	"github.com/shamsitray/shamsitray/internal/database"
	"github.com/shamsitray/shamsitray/internal/event"
	"github.com/shamsitray/shamsitray/internal/holiday"
	"github.com/shamsitray/shamsitray/internal/logging"
	"github.com/shamsitray/shamsitray/internal/rollover"
	"github.com/shamsitray/shamsitray/internal/server"
	"github.com/shamsitray/shamsitray/internal/store"
	ws "github.com/shamsitray/shamsitray/internal/websocket"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword()
		return
	}

	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		logger.Error("create data dir", "path", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.SettingsDBPath())
	if err != nil {
		logger.Error("open settings db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	settings := store.NewSettingsStore(db)
	if all, err := settings.GetAll(); err != nil {
		logger.Warn("read settings", "error", err)
	} else {
		logger.Debug("settings loaded", "settings", all)
	}

	holidays := holiday.NewSet(cfg.UserHolidaysPath(), logger.With("component", "holiday"))
	engine := event.NewEngine(event.NewFileStore(cfg.EventsPath()), logger.With("component", "event"))
	defer engine.Close()

	hub := ws.NewHub(logger.With("component", "websocket"))

	watcher := rollover.New(clock.System{}, engine, hub, logger.With("component", "rollover"))
	if err := watcher.Start(); err != nil {
		logger.Error("start rollover watcher", "error", err)
		os.Exit(1)
	}
	defer watcher.Stop()

	srv := server.New(engine, holidays, settings, hub, watcher.Today, cfg.BasicAuth, logger)

	httpServer := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("shamsitray listening", "addr", cfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	engine.Flush()
}
