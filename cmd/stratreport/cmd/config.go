package cmd

import (
	"fmt"

	"github.com/rustyeddy/stratreport/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage report configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  stratreport config init -o report.yaml
  stratreport config validate -f report.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  stratreport config init -o report.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  stratreport config validate -f report.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "report.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit the file and run with:")
	fmt.Fprintf(cmd.OutOrStdout(), "  stratreport report --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(cmd.OutOrStdout(), "  Starting capital: $%.2f per asset\n", cfg.StartingCapital)
	if cfg.Artifacts.Source == "sqlite" {
		fmt.Fprintf(cmd.OutOrStdout(), "  Artifacts: sqlite %s\n", cfg.Artifacts.DBPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  Artifacts: csv %s\n", cfg.Artifacts.Dir)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Output: %s (%.0fx%.0f in @ %d dpi)\n",
		cfg.Report.Output, cfg.Report.WidthIn, cfg.Report.HeightIn, cfg.Report.DPI)
	return nil
}
