package cmd

import (
	"github.com/rustyeddy/stratreport/pipeline"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the artifacts and print the comparison without rendering",
	Long: `Check loads and validates the four backtest artifacts and prints the text
report. No image is written.

Example:
  stratreport check --dir results`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addArtifactFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	_, err = pipeline.Run(cmd.Context(), pipeline.Options{
		Config:    cfg,
		Stdout:    cmd.OutOrStdout(),
		Log:       &log,
		SkipImage: true,
	})
	return err
}
