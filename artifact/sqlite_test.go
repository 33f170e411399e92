package artifact

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArtifactSchema = `
CREATE TABLE results_momentum_equity (bar_idx INTEGER, "A" REAL, "B" REAL);
CREATE TABLE results_meanreversion_equity (bar_idx INTEGER, "A" REAL, "B" REAL);
CREATE TABLE results_momentum_summary (
	asset TEXT, sharpe REAL, max_dd REAL, final_equity REAL, trades INTEGER, total_return REAL
);
CREATE TABLE results_meanreversion_summary (
	asset TEXT, sharpe REAL, max_dd REAL, final_equity REAL, trades INTEGER, total_return REAL
);

INSERT INTO results_momentum_equity VALUES (0, 100000, 100000), (1, 100500, 99900), (2, 99800, 99700);
INSERT INTO results_meanreversion_equity VALUES (0, 100000, 100000), (1, 100100, 100050), (2, 100300, 100200);
INSERT INTO results_momentum_summary VALUES ('A', 1.2, -0.05, 105000, 12, 0.05), ('B', 0.3, -0.08, 98000, 9, -0.02);
INSERT INTO results_meanreversion_summary VALUES ('A', 0.9, -0.04, 103000, 20, 0.03), ('B', 0.5, -0.02, 101000, 18, 0.01);
`

func newTestArtifactDB(t *testing.T, schema string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "artifacts.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(schema)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	return path
}

func TestSQLiteSourceLoad(t *testing.T) {
	t.Parallel()

	src, err := OpenSQLite(newTestArtifactDB(t, testArtifactSchema))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	arts, err := NewLoader(src, DefaultNames()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, arts.MomentumEquity.BarIdx)
	assert.Equal(t, []string{"A", "B"}, arts.MomentumEquity.Assets)
	assert.Equal(t, []float64{100000, 100500, 99800}, arts.MomentumEquity.Equity[0])

	require.Equal(t, 2, arts.MeanReversionSummary.Len())
	assert.Equal(t, "B", arts.MeanReversionSummary.Rows[1].Asset)
	assert.Equal(t, 18, arts.MeanReversionSummary.Rows[1].Trades)
	assert.InDelta(t, 0.5, arts.MeanReversionSummary.Rows[1].Sharpe, 1e-12)
}

func TestSQLiteSourceMissingTable(t *testing.T) {
	t.Parallel()

	src, err := OpenSQLite(newTestArtifactDB(t, `CREATE TABLE results_momentum_equity (bar_idx INTEGER, "A" REAL);`))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, err = src.ReadTable(context.Background(), "results_momentum_summary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactMissing))
}

func TestSQLiteMissingDatabase(t *testing.T) {
	t.Parallel()

	_, err := OpenSQLite(filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactMissing))
}

func TestSQLiteSourceSchemaMismatch(t *testing.T) {
	t.Parallel()

	schema := testArtifactSchema + `
DROP TABLE results_momentum_summary;
CREATE TABLE results_momentum_summary (asset TEXT, sharpe REAL);
`
	src, err := OpenSQLite(newTestArtifactDB(t, schema))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, err = NewLoader(src, DefaultNames()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}
