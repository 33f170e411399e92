package artifact

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

// Names maps each required artifact to its table name in a Source.
type Names struct {
	MomentumEquity       string `json:"momentum_equity" yaml:"momentum_equity"`
	MeanReversionEquity  string `json:"meanreversion_equity" yaml:"meanreversion_equity"`
	MomentumSummary      string `json:"momentum_summary" yaml:"momentum_summary"`
	MeanReversionSummary string `json:"meanreversion_summary" yaml:"meanreversion_summary"`
}

// DefaultNames are the file stems written by the backtest engine.
func DefaultNames() Names {
	return Names{
		MomentumEquity:       "results_momentum_equity",
		MeanReversionEquity:  "results_meanreversion_equity",
		MomentumSummary:      "results_momentum_summary",
		MeanReversionSummary: "results_meanreversion_summary",
	}
}

// Loader reads and validates the four report inputs from a Source.
type Loader struct {
	Source Source
	Names  Names
}

func NewLoader(src Source, names Names) *Loader {
	return &Loader{Source: src, Names: names}
}

// Load reads the equity series first, then the summaries, and stops at the
// first missing or malformed artifact. Tables are returned as loaded; no
// derived columns are added.
func (l *Loader) Load(ctx context.Context) (*Artifacts, error) {
	var arts Artifacts
	var err error

	if arts.MomentumEquity, err = l.equity(ctx, Momentum, l.Names.MomentumEquity); err != nil {
		return nil, err
	}
	if arts.MeanReversionEquity, err = l.equity(ctx, MeanReversion, l.Names.MeanReversionEquity); err != nil {
		return nil, err
	}
	if arts.MomentumSummary, err = l.summary(ctx, Momentum, l.Names.MomentumSummary); err != nil {
		return nil, err
	}
	if arts.MeanReversionSummary, err = l.summary(ctx, MeanReversion, l.Names.MeanReversionSummary); err != nil {
		return nil, err
	}
	return &arts, nil
}

func (l *Loader) equity(ctx context.Context, s Strategy, name string) (EquitySeries, error) {
	t, err := l.Source.ReadTable(ctx, name)
	if err != nil {
		return EquitySeries{}, err
	}
	return ParseEquity(s, t)
}

func (l *Loader) summary(ctx context.Context, s Strategy, name string) (StrategySummary, error) {
	t, err := l.Source.ReadTable(ctx, name)
	if err != nil {
		return StrategySummary{}, err
	}
	return ParseSummary(s, t)
}

// ParseEquity converts a table with a bar_idx column and one column per
// asset into an EquitySeries. Asset columns keep their table order.
func ParseEquity(s Strategy, t *Table) (EquitySeries, error) {
	bar := t.Index(ColBarIdx)
	if bar < 0 {
		return EquitySeries{}, schema(t.Name, ColBarIdx, "required column not found")
	}

	var cols []int
	es := EquitySeries{Strategy: s}
	for i, c := range t.Columns {
		if i == bar {
			continue
		}
		cols = append(cols, i)
		es.Assets = append(es.Assets, c)
	}
	if len(cols) == 0 {
		return EquitySeries{}, schema(t.Name, "", "no asset equity columns")
	}

	es.BarIdx = make([]int, 0, len(t.Rows))
	es.Equity = make([][]float64, len(cols))
	for j := range es.Equity {
		es.Equity[j] = make([]float64, 0, len(t.Rows))
	}

	for r, row := range t.Rows {
		idx, err := parseInt(cell(row, bar))
		if err != nil {
			return EquitySeries{}, schema(t.Name, ColBarIdx, fmt.Sprintf("row %d: %v", r+1, err))
		}
		if n := len(es.BarIdx); n > 0 && idx <= es.BarIdx[n-1] {
			return EquitySeries{}, schema(t.Name, ColBarIdx,
				fmt.Sprintf("row %d: bar_idx %d not greater than %d", r+1, idx, es.BarIdx[n-1]))
		}
		es.BarIdx = append(es.BarIdx, idx)

		for j, c := range cols {
			v, err := parseFloat(cell(row, c))
			if err != nil {
				return EquitySeries{}, schema(t.Name, es.Assets[j], fmt.Sprintf("row %d: %v", r+1, err))
			}
			es.Equity[j] = append(es.Equity[j], v)
		}
	}
	return es, nil
}

// ParseSummary converts a summary table into a StrategySummary. The
// required columns may appear in any order; other columns are ignored.
func ParseSummary(s Strategy, t *Table) (StrategySummary, error) {
	idx := make(map[string]int, len(SummaryColumns))
	for _, c := range SummaryColumns {
		i := t.Index(c)
		if i < 0 {
			return StrategySummary{}, schema(t.Name, c, "required column not found")
		}
		idx[c] = i
	}

	ss := StrategySummary{Strategy: s, Rows: make([]SummaryRow, 0, len(t.Rows))}
	for r, row := range t.Rows {
		sr := SummaryRow{Asset: cell(row, idx[ColAsset])}
		if sr.Asset == "" {
			return StrategySummary{}, schema(t.Name, ColAsset, fmt.Sprintf("row %d: empty asset", r+1))
		}

		for _, f := range []struct {
			col string
			dst *float64
		}{
			{ColFinalEquity, &sr.FinalEquity},
			{ColSharpe, &sr.Sharpe},
			{ColMaxDD, &sr.MaxDD},
			{ColTotalReturn, &sr.TotalReturn},
		} {
			v, err := parseFloat(cell(row, idx[f.col]))
			if err != nil {
				return StrategySummary{}, schema(t.Name, f.col, fmt.Sprintf("row %d: %v", r+1, err))
			}
			*f.dst = v
		}

		n, err := parseInt(cell(row, idx[ColTrades]))
		if err != nil {
			return StrategySummary{}, schema(t.Name, ColTrades, fmt.Sprintf("row %d: %v", r+1, err))
		}
		if n < 0 {
			return StrategySummary{}, schema(t.Name, ColTrades, fmt.Sprintf("row %d: negative trade count %d", r+1, n))
		}
		sr.Trades = n

		ss.Rows = append(ss.Rows, sr)
	}
	return ss, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}

// parseInt accepts integers and integral floats ("12", "12.0").
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("bad integer %q", s)
	}
	return int(f), nil
}
