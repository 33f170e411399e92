package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/stratreport/config"
	"github.com/rustyeddy/stratreport/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stratreport",
	Short: "Compare momentum and mean reversion backtest results",
	Long: `Stratreport builds a side-by-side performance report for the momentum and
mean reversion strategies from the artifacts written by the backtester.

It reads:
  - results_momentum_equity.csv        bar_idx plus one equity column per asset
  - results_meanreversion_equity.csv   bar_idx plus one equity column per asset
  - results_momentum_summary.csv       asset,final_equity,sharpe,max_dd,total_return,trades
  - results_meanreversion_summary.csv  asset,final_equity,sharpe,max_dd,total_return,trades

and writes a text report to stdout and a 3x2 chart grid to hft_backtest_analysis.png.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, err
		}
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	applyReportFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    cmd.ErrOrStderr(),
	})
}
