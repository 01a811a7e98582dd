package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tunesleuth/src/features/analysis"
	"tunesleuth/src/features/config"
	"tunesleuth/src/features/hosting"
	"tunesleuth/src/features/jobs"
	"tunesleuth/src/features/metrics"
	"tunesleuth/src/features/scanning"
	"tunesleuth/src/infra/watcher"
)

func newServeCommand(configFlag *string) *cobra.Command {
	var libraryFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server, watcher and Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgManager, err := loadRuntime(*configFlag, libraryFlag)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfgManager)
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library path (overrides config)")

	return cmd
}

func runServer(ctx context.Context, cfgManager *config.Manager) error {
	cfg := cfgManager.Get()

	recorder := metrics.NewRecorder()

	scanningService, cleanup, err := newScanningService(cfgManager, recorder)
	if err != nil {
		return err
	}
	defer cleanup()

	// A saved snapshot gives the API a catalog before the first scan lands.
	if err := scanningService.RestoreSnapshot(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Info("No catalog snapshot to restore")
		} else {
			slog.Warn("Could not restore catalog snapshot", "error", err)
		}
	}

	analysisService := analysis.NewService(scanningService, cfgManager, recorder)

	jobService := jobs.NewService(&cfg.Jobs)
	jobService.RegisterHandler(scanning.JobTypeScan, jobs.NewBaseTaskHandler(scanning.NewScanTask(scanningService)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, ok := scanningService.Current(); !ok {
		if _, err := jobService.StartJob(scanning.JobTypeScan, "Initial library scan", nil); err != nil {
			slog.Error("Could not queue initial scan", "error", err)
		}
	}

	var libraryWatcher *watcher.Watcher
	if cfg.Watcher.Enabled {
		events := make(chan watcher.LibraryEvent, 16)
		debounce := time.Duration(cfg.Watcher.DebounceSeconds) * time.Second
		libraryWatcher, err = watcher.NewWatcher(events, cfg.Scan.Extensions, debounce)
		if err != nil {
			return err
		}
		if err := libraryWatcher.Start(ctx, cfg.LibraryPath); err != nil {
			return err
		}
		go scanning.WatchLoop(ctx, events, jobService)
	}

	var telegramBot *hosting.TelegramBot
	if cfg.Telegram.Enabled {
		telegramBot, err = hosting.NewTelegramBot(cfgManager, scanningService, analysisService, jobService)
		if err != nil {
			slog.Error("Could not start Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
		}
	}

	server := hosting.NewServer(cfgManager, scanningService, analysisService, jobService)
	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			slog.Error("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	cancel()
	if libraryWatcher != nil {
		libraryWatcher.Stop()
	}
	if telegramBot != nil {
		telegramBot.Stop()
	}
	if err := server.Shutdown(); err != nil {
		slog.Error("Error during server shutdown", "error", err)
	}
	return nil
}
