package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	momEquityCSV = "bar_idx,A,B,C\n0,100000,100000,100000\n1,100500,99900,100200\n2,99800,99700,100900\n"
	mrEquityCSV  = "bar_idx,A,B,C\n0,100000,100000,100000\n1,100100,100050,99950\n2,100300,100200,100100\n"
	momSumCSV    = "asset,sharpe,max_dd,final_equity,trades,total_return\n" +
		"A,1.2,-0.05,105000,12,0.05\n" +
		"B,0.3,-0.08,98000,9,-0.02\n" +
		"C,1.8,-0.03,112000,15,0.12\n"
	mrSumCSV = "asset,sharpe,max_dd,final_equity,trades,total_return\n" +
		"A,0.9,-0.04,103000,20,0.03\n" +
		"B,0.5,-0.02,101000,18,0.01\n" +
		"C,1.1,-0.06,104000,22,0.04\n"
)

// writeArtifacts writes the four default CSV artifacts into a temp dir,
// letting callers override any file body by name.
func writeArtifacts(t *testing.T, overrides map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	names := DefaultNames()
	files := map[string]string{
		names.MomentumEquity:       momEquityCSV,
		names.MeanReversionEquity:  mrEquityCSV,
		names.MomentumSummary:      momSumCSV,
		names.MeanReversionSummary: mrSumCSV,
	}
	for k, v := range overrides {
		files[k] = v
	}
	for name, body := range files {
		if body == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".csv"), []byte(body), 0644))
	}
	return dir
}
