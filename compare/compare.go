// Package compare derives the cross-strategy statistics shown in the
// report. Every number printed or charted as an aggregate comes from here.
package compare

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/stratreport/artifact"
)

var (
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrAlignmentMismatch = errors.New("alignment mismatch")
)

// TotalPnL is the realized P/L over all assets: sum(final_equity - capital).
func TotalPnL(s artifact.StrategySummary, startingCapital float64) float64 {
	var pl float64
	for _, r := range s.Rows {
		pl += r.FinalEquity - startingCapital
	}
	return pl
}

// AverageSharpe is the arithmetic mean of the per-asset Sharpe ratios, or 0
// for an empty summary.
func AverageSharpe(s artifact.StrategySummary) float64 {
	if len(s.Rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range s.Rows {
		sum += r.Sharpe
	}
	return sum / float64(len(s.Rows))
}

// TotalTrades sums the trade counts of every asset.
func TotalTrades(s artifact.StrategySummary) int {
	var n int
	for _, r := range s.Rows {
		n += r.Trades
	}
	return n
}

// WinCount counts the positions where momentum's Sharpe strictly exceeds
// mean reversion's. Rows are paired by position.
func WinCount(mom, mr artifact.StrategySummary) (int, error) {
	if err := checkLength(mom, mr); err != nil {
		return 0, err
	}
	wins := 0
	for i := range mom.Rows {
		if mom.Rows[i].Sharpe > mr.Rows[i].Sharpe {
			wins++
		}
	}
	return wins, nil
}

// CheckAlignment verifies both summaries list the same assets in the same
// order.
func CheckAlignment(mom, mr artifact.StrategySummary) error {
	if err := checkLength(mom, mr); err != nil {
		return err
	}
	for i := range mom.Rows {
		if mom.Rows[i].Asset != mr.Rows[i].Asset {
			return fmt.Errorf("%w: position %d is %q for %s but %q for %s",
				ErrAlignmentMismatch, i,
				mom.Rows[i].Asset, mom.Strategy.Label(),
				mr.Rows[i].Asset, mr.Strategy.Label())
		}
	}
	return nil
}

func checkLength(mom, mr artifact.StrategySummary) error {
	if mom.Len() != mr.Len() {
		return fmt.Errorf("%w: %s has %d assets, %s has %d",
			ErrLengthMismatch,
			mom.Strategy.Label(), mom.Len(),
			mr.Strategy.Label(), mr.Len())
	}
	return nil
}
