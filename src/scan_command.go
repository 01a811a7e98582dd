package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tunesleuth/src/features/scanning"
)

func newScanCommand(configFlag *string) *cobra.Command {
	var libraryFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and print catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgManager, err := loadRuntime(*configFlag, libraryFlag)
			if err != nil {
				return err
			}

			service, cleanup, err := newScanningService(cfgManager, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			var progress scanning.ProgressFunc
			if !jsonFlag {
				progress = scanProgress(cmd.ErrOrStderr())
			}

			lib, report, err := service.Scan(cmd.Context(), progress)
			if err != nil {
				return err
			}
			stats := lib.Stats()

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"report": report,
					"stats":  stats,
				})
			}

			rows := [][]string{
				{"Tracks", strconv.Itoa(stats.TotalTracks)},
				{"Artists", strconv.Itoa(stats.UniqueArtists)},
				{"Albums", strconv.Itoa(stats.UniqueAlbums)},
				{"Genres", strconv.Itoa(stats.UniqueGenres)},
				{"Folders", strconv.Itoa(stats.FolderCount)},
				{"Max folder depth", strconv.Itoa(stats.MaxFolderDepth)},
				{"Total size", formatBytes(stats.TotalSizeBytes)},
				{"Total playtime", formatSeconds(stats.TotalDurationSecs)},
				{"Tagged tracks", strconv.Itoa(stats.TracksWithTags)},
				{"Tag completeness", fmt.Sprintf("%.0f%%", stats.TagCompleteness*100)},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d tracks in %s (%d tag errors)\n\n",
				report.TracksFound, report.Elapsed.Round(time.Millisecond), report.TagErrors)
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library path (overrides config)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the report as JSON")

	return cmd
}
