package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/stratreport/artifact"
	"github.com/rustyeddy/stratreport/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Commands share package-level flag state, so these tests do not run in
// parallel.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stratreport version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "$100000.00 per asset")
}

func writeArtifacts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"results_momentum_equity.csv":       "bar_idx,A\n0,100000\n1,100500\n2,99800\n",
		"results_meanreversion_equity.csv":  "bar_idx,A\n0,100000\n1,100100\n2,100300\n",
		"results_momentum_summary.csv":      "asset,sharpe,max_dd,final_equity,trades,total_return\nA,1.2,-0.05,105000,12,0.05\n",
		"results_meanreversion_summary.csv": "asset,sharpe,max_dd,final_equity,trades,total_return\nA,0.9,-0.04,103000,20,0.03\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	return dir
}

func TestReportCommand(t *testing.T) {
	dir := writeArtifacts(t)
	output := filepath.Join(dir, "out.png")

	out, err := execute(t, "report", "--dir", dir, "--output", output, "--dpi", "40", "--capital", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, "Momentum wins: 1/1 assets by Sharpe")
	assert.Contains(t, out, "Momentum total P&L:       $55,000.00")
	assert.Contains(t, out, "Saved: ")
	assert.FileExists(t, output)
}

func TestCheckCommand(t *testing.T) {
	dir := writeArtifacts(t)

	out, err := execute(t, "check", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "HFT BACKTESTER: COMPREHENSIVE ANALYSIS")
	assert.Contains(t, out, "Momentum wins: 1/1 assets by Sharpe")
	assert.Contains(t, out, "Momentum total P&L:       $5,000.00")
	assert.NotContains(t, out, "Saved:")

	pngs, err := filepath.Glob(filepath.Join(dir, "*.png"))
	require.NoError(t, err)
	assert.Empty(t, pngs)
	assert.NoFileExists(t, "hft_backtest_analysis.png")
}

func TestCheckCommandMissingArtifact(t *testing.T) {
	dir := writeArtifacts(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "results_meanreversion_summary.csv")))

	_, err := execute(t, "check", "--dir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrArtifactMissing)
}
