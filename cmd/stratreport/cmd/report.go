package cmd

import (
	"fmt"

	"github.com/rustyeddy/stratreport/config"
	"github.com/rustyeddy/stratreport/pipeline"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the comparison and render the chart image",
	Long: `Report loads the four backtest artifacts, prints the comparison summary and
writes the chart grid (equity curves, Sharpe, drawdown, return and trade
count by asset) to a PNG file.

Examples:
  stratreport report
  stratreport report --dir results --output results/report.png --capital 250000
  stratreport report --source sqlite --db results.db --show`,
	RunE: runReport,
}

var (
	rpDir     string
	rpSource  string
	rpDBPath  string
	rpOutput  string
	rpCapital float64
	rpDPI     int
	rpShow    bool
	rpLenient bool
)

func init() {
	rootCmd.AddCommand(reportCmd)
	addArtifactFlags(reportCmd)

	reportCmd.Flags().StringVarP(&rpOutput, "output", "o", "hft_backtest_analysis.png", "output image path")
	reportCmd.Flags().IntVar(&rpDPI, "dpi", 150, "image resolution")
	reportCmd.Flags().BoolVar(&rpShow, "show", false, "open the image in the system viewer")
}

// addArtifactFlags registers the input and comparison flags shared by
// report and check.
func addArtifactFlags(c *cobra.Command) {
	c.Flags().StringVarP(&rpDir, "dir", "d", ".", "directory holding the CSV artifacts")
	c.Flags().StringVar(&rpSource, "source", "csv", "artifact source (csv, sqlite)")
	c.Flags().StringVar(&rpDBPath, "db", "", "SQLite database holding the artifact tables")
	c.Flags().Float64Var(&rpCapital, "capital", 100_000, "starting capital per asset")
	c.Flags().BoolVar(&rpLenient, "lenient", false, "compare by position even if the asset order differs")
}

// applyReportFlags copies explicitly set flags over cfg.
func applyReportFlags(c *cobra.Command, cfg *config.Config) {
	f := c.Flags()
	if f.Changed("dir") {
		cfg.Artifacts.Dir = rpDir
	}
	if f.Changed("source") {
		cfg.Artifacts.Source = rpSource
	}
	if f.Changed("db") {
		cfg.Artifacts.DBPath = rpDBPath
		if !f.Changed("source") {
			cfg.Artifacts.Source = "sqlite"
		}
	}
	if f.Changed("capital") {
		cfg.StartingCapital = rpCapital
	}
	if f.Changed("lenient") {
		cfg.Compare.StrictAlignment = !rpLenient
	}
	if f.Changed("output") {
		cfg.Report.Output = rpOutput
	}
	if f.Changed("dpi") {
		cfg.Report.DPI = rpDPI
	}
	if f.Changed("show") {
		cfg.Report.Show = rpShow
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Config: cfg,
		Stdout: cmd.OutOrStdout(),
		Log:    &log,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Saved: %s\n", res.ImagePath)

	if cfg.Report.Show {
		if err := openViewer(res.ImagePath); err != nil {
			log.Warn().Err(err).Str("image", res.ImagePath).Msg("could not open image viewer")
		}
	}
	return nil
}
