// Package summary prints the text version of the comparison report.
package summary

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/rustyeddy/stratreport/artifact"
	"github.com/rustyeddy/stratreport/compare"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	rule = strings.Repeat("=", 70)
	thin = strings.Repeat("-", 70)
	num  = message.NewPrinter(language.English)
)

// Print writes the per-strategy tables, the aggregate lines and the
// comparison section. Aggregates are taken from cmp only.
func Print(w io.Writer, arts *artifact.Artifacts, cmp *compare.Comparison) error {
	ew := &errWriter{w: w}

	ew.println(rule)
	ew.println("HFT BACKTESTER: COMPREHENSIVE ANALYSIS")
	ew.println(rule)

	for i, s := range []struct {
		summary artifact.StrategySummary
		stats   compare.StrategyStats
	}{
		{arts.MomentumSummary, cmp.Momentum},
		{arts.MeanReversionSummary, cmp.MeanReversion},
	} {
		if i > 0 {
			ew.println()
			ew.println(rule)
		}
		ew.println()
		ew.printf("%s STRATEGY:\n", strings.ToUpper(s.summary.Strategy.Label()))
		ew.write(Table(s.summary))
		ew.println()
		ew.printf("Total P&L:     %s\n", Currency(s.stats.TotalPnL))
		ew.printf("Avg Sharpe:    %.4f\n", s.stats.AverageSharpe)
		ew.printf("Total Trades:  %d\n", s.stats.TotalTrades)
	}

	ew.println()
	ew.println(rule)
	ew.println("PERFORMANCE COMPARISON:")
	ew.printf("Momentum wins: %d/%d assets by Sharpe\n", cmp.Wins, cmp.N)
	ew.printf("Momentum total P&L:       %s\n", Currency(cmp.Momentum.TotalPnL))
	ew.printf("Mean Reversion total P&L: %s\n", Currency(cmp.MeanReversion.TotalPnL))
	if !cmp.Aligned {
		ew.println("Warning: asset order differs between summaries; compared by position")
	}

	if len(cmp.PerAsset) > 0 {
		ew.println()
		ew.println("Sharpe by Asset")
		ew.println(thin)
		tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Asset\tMomentum\tMean Reversion\tWinner\t")
		for _, a := range cmp.PerAsset {
			winner := artifact.MeanReversion.Label()
			switch {
			case a.MomentumWins:
				winner = artifact.Momentum.Label()
			case a.MomentumSharpe == a.MeanReversionSharpe:
				winner = "tie"
			}
			fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%s\t\n", a.Asset, a.MomentumSharpe, a.MeanReversionSharpe, winner)
		}
		if err := tw.Flush(); err != nil && ew.err == nil {
			ew.err = err
		}
	}
	ew.println(rule)

	return ew.err
}

// Table formats a strategy summary with right-aligned columns.
func Table(s artifact.StrategySummary) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(artifact.SummaryColumns, "\t")+"\t")
	for _, r := range s.Rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%.4f\t%.4f\t%.4f\t%d\t\n",
			r.Asset, r.FinalEquity, r.Sharpe, r.MaxDD, r.TotalReturn, r.Trades)
	}
	tw.Flush()
	return sb.String()
}

// Currency formats v as dollars with thousands separators and two
// decimals, e.g. -$2,000.00.
func Currency(v float64) string {
	v = math.Round(v*100) / 100
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	return sign + "$" + num.Sprintf("%.2f", v)
}

// errWriter keeps the first write error so Print can check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) write(s string) {
	io.WriteString(e, s)
}

func (e *errWriter) println(a ...any) {
	fmt.Fprintln(e, a...)
}

func (e *errWriter) printf(format string, a ...any) {
	fmt.Fprintf(e, format, a...)
}
