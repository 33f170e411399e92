// Package artifact loads the backtest outputs that the comparison report is
// built from: one equity series and one summary table per strategy.
package artifact

// Strategy identifies which backtest produced an artifact.
type Strategy string

const (
	Momentum      Strategy = "momentum"
	MeanReversion Strategy = "meanreversion"
)

// Label is the human readable strategy name used in charts and reports.
func (s Strategy) Label() string {
	switch s {
	case Momentum:
		return "Momentum"
	case MeanReversion:
		return "Mean Reversion"
	default:
		return string(s)
	}
}

// EquitySeries holds the running equity of every asset for one strategy.
// Equity[j][i] is the equity of Assets[j] at BarIdx[i].
type EquitySeries struct {
	Strategy Strategy
	BarIdx   []int
	Assets   []string
	Equity   [][]float64
}

// Len returns the number of bars in the series.
func (e EquitySeries) Len() int {
	return len(e.BarIdx)
}

// SummaryRow is one strategy/asset pair's terminal metrics as computed by
// the backtest engine.
type SummaryRow struct {
	Asset       string
	FinalEquity float64
	Sharpe      float64
	MaxDD       float64 // fractional, <= 0
	TotalReturn float64 // fractional
	Trades      int
}

// StrategySummary is the ordered set of summary rows for one strategy.
type StrategySummary struct {
	Strategy Strategy
	Rows     []SummaryRow
}

func (s StrategySummary) Len() int {
	return len(s.Rows)
}

// Assets returns the asset identifiers in row order.
func (s StrategySummary) Assets() []string {
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Asset
	}
	return out
}

// Artifacts bundles the four validated inputs of a report run.
type Artifacts struct {
	MomentumEquity       EquitySeries
	MeanReversionEquity  EquitySeries
	MomentumSummary      StrategySummary
	MeanReversionSummary StrategySummary
}

// Required summary columns, in the order they are printed.
const (
	ColAsset       = "asset"
	ColFinalEquity = "final_equity"
	ColSharpe      = "sharpe"
	ColMaxDD       = "max_dd"
	ColTotalReturn = "total_return"
	ColTrades      = "trades"

	ColBarIdx = "bar_idx"
)

// SummaryColumns lists every column a summary table must carry.
var SummaryColumns = []string{ColAsset, ColFinalEquity, ColSharpe, ColMaxDD, ColTotalReturn, ColTrades}
