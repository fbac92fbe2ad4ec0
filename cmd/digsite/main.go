package main

import (
	"fmt"
	"os"

	"digsite/app"
	"digsite/internal/config"
	"digsite/internal/errors"
	"digsite/internal/journal"
	"digsite/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand
type cli struct {
	cfg        *config.Config
	svc        *app.ArchiveService
	jsonOutput bool
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{svc: app.NewDefaultArchiveService()}

	rootCmd := &cobra.Command{
		Use:           "digsite",
		Short:         "Load expedition records and extract journal dates and secret codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			c.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Emit JSON instead of text")

	rootCmd.AddCommand(
		c.newReportCmd(),
		c.newArtifactsCmd(),
		c.newLocationsCmd(),
		c.newJournalCmd(),
	)
	return rootCmd
}

func (c *cli) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Load all three sources and print previews and extracted tokens",
		Long: `Load the artifact workbook, the location notes and the journal, then print
a preview of both tables and the dates and secret codes found in the journal.

Missing files are reported and skipped. Paths come from ARTIFACTS_FILE,
LOCATIONS_FILE and JOURNAL_FILE (defaults: artifacts.xlsx, locations.tsv, journal.txt).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.svc.Survey(cmd.Context(), app.SurveyPaths{
				ArtifactsFile: c.cfg.Paths.ArtifactsFile,
				LocationsFile: c.cfg.Paths.LocationsFile,
				JournalFile:   c.cfg.Paths.JournalFile,
			})
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newReportView(report))
			}
			return writeReport(cmd.OutOrStdout(), report, c.cfg.Report.PreviewRows)
		},
	}
}

func (c *cli) newArtifactsCmd() *cobra.Command {
	var describe bool
	var rows int

	cmd := &cobra.Command{
		Use:   "artifacts [xlsx-file]",
		Short: `Load the "Main Chamber" sheet of an artifact workbook`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := argOrDefault(args, c.cfg.Paths.ArtifactsFile)
			if rows < 0 {
				rows = c.cfg.Report.PreviewRows
			}

			rs, err := c.svc.LoadArtifactData(path)
			if errors.IsFileNotFound(err) {
				writeNotFound(cmd.OutOrStdout(), path)
				return nil
			}
			if err != nil {
				return err
			}

			view := newTableView(path, rs)
			if describe {
				if view.Stats, err = rs.Describe(); err != nil {
					return errors.Wrap(err, "failed to describe artifacts")
				}
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			if err := writeTable(cmd.OutOrStdout(), rs, rows); err != nil {
				return err
			}
			if describe {
				fmt.Fprintln(cmd.OutOrStdout())
				return writeStats(cmd.OutOrStdout(), view.Stats)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&describe, "describe", false, "Print statistics for numeric columns")
	cmd.Flags().IntVar(&rows, "rows", -1, "Rows to preview (default PREVIEW_ROWS)")
	return cmd
}

func (c *cli) newLocationsCmd() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "locations [tsv-file]",
		Short: "Load a tab-delimited location notes table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := argOrDefault(args, c.cfg.Paths.LocationsFile)
			if rows < 0 {
				rows = c.cfg.Report.PreviewRows
			}

			rs, err := c.svc.LoadLocationNotes(path)
			if errors.IsFileNotFound(err) {
				writeNotFound(cmd.OutOrStdout(), path)
				return nil
			}
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newTableView(path, rs))
			}
			return writeTable(cmd.OutOrStdout(), rs, rows)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", -1, "Rows to preview (default PREVIEW_ROWS)")
	return cmd
}

func (c *cli) newJournalCmd() *cobra.Command {
	var withOffsets bool

	cmd := &cobra.Command{
		Use:   "journal [text-file]",
		Short: "Extract MM/DD/YYYY dates and AZMAR-XXX codes from a journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := argOrDefault(args, c.cfg.Paths.JournalFile)

			text, err := c.svc.ReadJournal(path)
			if errors.IsFileNotFound(err) {
				writeNotFound(cmd.OutOrStdout(), path)
				return nil
			}
			if err != nil {
				return err
			}

			if withOffsets {
				return writeJSON(cmd.OutOrStdout(), map[string][]journal.Token{
					"dates": journal.FindDates(text),
					"codes": journal.FindSecretCodes(text),
				})
			}
			tokens := journal.Extraction{
				Dates: c.svc.ExtractJournalDates(text),
				Codes: c.svc.ExtractSecretCodes(text),
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newJournalView(path, &tokens))
			}
			writeTokens(cmd.OutOrStdout(), tokens)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withOffsets, "offsets", false, "Emit tokens with byte offsets as JSON")
	return cmd
}

func argOrDefault(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}
