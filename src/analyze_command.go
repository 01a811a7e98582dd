package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tunesleuth/src/features/analysis"
	"tunesleuth/src/features/scanning"
	"tunesleuth/src/music"
)

func newAnalyzeCommand(configFlag *string) *cobra.Command {
	var libraryFlag string
	var jsonFlag bool
	var explainFlag bool
	var lowFlag bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Scan the library and infer its naming and folder conventions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgManager, err := loadRuntime(*configFlag, libraryFlag)
			if err != nil {
				return err
			}

			scanService, cleanup, err := newScanningService(cfgManager, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			var progress scanning.ProgressFunc
			if !jsonFlag {
				progress = scanProgress(cmd.ErrOrStderr())
			}
			if _, _, err := scanService.Scan(cmd.Context(), progress); err != nil {
				return err
			}

			analysisService := analysis.NewService(scanService, cfgManager, nil)
			opts := analysis.Options{Explain: explainFlag, IncludeLowConfidence: lowFlag}
			report, err := analysisService.Report(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			out := cmd.OutOrStdout()
			printPatternTable(cmd, "Filename patterns", report.FilenamePatterns, explainFlag)
			printPatternTable(cmd, "Folder patterns", report.FolderPatterns, explainFlag)

			fmt.Fprintf(out, "Primary filename convention: %s\n", analysis.SummaryLine(report.Summary.PrimaryFilename))
			fmt.Fprintf(out, "Primary folder convention:   %s\n", analysis.SummaryLine(report.Summary.PrimaryFolder))
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library path (overrides config)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&explainFlag, "explain", true, "Include explanations and example files")
	cmd.Flags().BoolVar(&lowFlag, "low", false, "Include low-confidence patterns")

	return cmd
}

func printPatternTable(cmd *cobra.Command, title string, matches []music.PatternMatch, explain bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	if len(matches) == 0 {
		fmt.Fprintln(out, "  no patterns found")
		fmt.Fprintln(out)
		return
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.Description,
			m.Band.String(),
			fmt.Sprintf("%d/%d", m.Matched, m.Considered),
			strconv.Itoa(m.Percent()) + "%",
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Pattern", "Confidence", "Matches", "Score"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))

	if explain {
		for _, m := range matches {
			fmt.Fprintf(out, "  %s\n", m.Explanation)
			for _, example := range m.Examples {
				fmt.Fprintf(out, "    e.g. %s\n", example)
			}
		}
	}
	fmt.Fprintln(out)
}
