package artifact

import (
	"context"
	"strings"
)

// Table is the raw, untyped form of a tabular artifact: a header and rows of
// cells in header order.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), column) {
			return i
		}
	}
	return -1
}

// cell returns row[i] trimmed, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Source locates and reads named tables. Implementations must return an
// error matching ErrArtifactMissing when the table does not exist.
type Source interface {
	ReadTable(ctx context.Context, name string) (*Table, error)
}
