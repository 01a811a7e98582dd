package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tunesleuth/src/features/config"
	"tunesleuth/src/features/logging"
	"tunesleuth/src/features/metrics"
	"tunesleuth/src/features/scanning"
	"tunesleuth/src/infra/audio"
	"tunesleuth/src/infra/snapshot"
	"tunesleuth/src/infra/tag"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "tunesleuth",
		Short:         "Infer the naming and folder conventions of a music library",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.yaml", "Configuration file path")

	rootCmd.AddCommand(newScanCommand(&configFlag))
	rootCmd.AddCommand(newAnalyzeCommand(&configFlag))
	rootCmd.AddCommand(newServeCommand(&configFlag))

	return rootCmd
}

// loadRuntime loads the configuration and installs the global logger.
func loadRuntime(configPath, libraryOverride string) (*config.Manager, error) {
	cfgManager, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if libraryOverride != "" {
		cfg := *cfgManager.Get()
		cfg.LibraryPath = libraryOverride
		cfgManager.Update(&cfg)
	}

	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)
	return cfgManager, nil
}

// newScanningService wires the scanning service with its file-level
// collaborators. The returned cleanup closes the snapshot store.
func newScanningService(cfgManager *config.Manager, recorder *metrics.Recorder) (*scanning.Service, func(), error) {
	var store scanning.SnapshotStore
	cleanup := func() {}

	if cfgManager.Get().Snapshot.Enabled {
		sqlStore, err := snapshot.NewSqliteStore(cfgManager.Get().Snapshot.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		store = sqlStore
		cleanup = func() { sqlStore.Close() }
	}

	service := scanning.NewService(cfgManager, tag.NewReader(), audio.NewProber(), store, recorder)
	return service, cleanup, nil
}
