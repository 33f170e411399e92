package compare

import (
	"github.com/rustyeddy/stratreport/artifact"
)

// Options controls how two summaries are compared.
type Options struct {
	StartingCapital float64

	// StrictAlignment rejects summaries whose asset identifiers differ at
	// any position. When false, rows are still zipped by position.
	StrictAlignment bool
}

// StrategyStats are the aggregates reported for one strategy.
type StrategyStats struct {
	Strategy      artifact.Strategy
	TotalPnL      float64
	AverageSharpe float64
	TotalTrades   int
}

// AssetResult pairs one asset's Sharpe ratios.
type AssetResult struct {
	Asset               string
	MomentumSharpe      float64
	MeanReversionSharpe float64
	MomentumWins        bool
}

// Comparison is the analyzer output consumed by the renderer and printer.
type Comparison struct {
	StartingCapital float64
	Assets          []string // momentum summary order
	N               int
	Wins            int
	Aligned         bool

	Momentum      StrategyStats
	MeanReversion StrategyStats
	PerAsset      []AssetResult
}

// Analyze computes every comparison statistic for the report. It fails with
// ErrLengthMismatch when the summaries have different lengths, and with
// ErrAlignmentMismatch under StrictAlignment when the asset orders differ.
func Analyze(mom, mr artifact.StrategySummary, opts Options) (*Comparison, error) {
	wins, err := WinCount(mom, mr)
	if err != nil {
		return nil, err
	}

	alignErr := CheckAlignment(mom, mr)
	if alignErr != nil && opts.StrictAlignment {
		return nil, alignErr
	}

	c := &Comparison{
		StartingCapital: opts.StartingCapital,
		Assets:          mom.Assets(),
		N:               mom.Len(),
		Wins:            wins,
		Aligned:         alignErr == nil,
		Momentum:        stats(mom, opts.StartingCapital),
		MeanReversion:   stats(mr, opts.StartingCapital),
		PerAsset:        make([]AssetResult, mom.Len()),
	}
	for i := range mom.Rows {
		c.PerAsset[i] = AssetResult{
			Asset:               mom.Rows[i].Asset,
			MomentumSharpe:      mom.Rows[i].Sharpe,
			MeanReversionSharpe: mr.Rows[i].Sharpe,
			MomentumWins:        mom.Rows[i].Sharpe > mr.Rows[i].Sharpe,
		}
	}
	return c, nil
}

func stats(s artifact.StrategySummary, capital float64) StrategyStats {
	return StrategyStats{
		Strategy:      s.Strategy,
		TotalPnL:      TotalPnL(s, capital),
		AverageSharpe: AverageSharpe(s),
		TotalTrades:   TotalTrades(s),
	}
}
