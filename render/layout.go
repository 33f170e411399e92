// Package render lays out the comparison charts and draws them into a PNG.
//
// Building the chart content (Build) is separate from drawing it
// (Renderer.Render) so the plotted data can be inspected without decoding
// an image. Each Render call draws into its own Figure; there is no shared
// canvas.
package render

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/stratreport/artifact"
	"github.com/rustyeddy/stratreport/compare"
)

var ErrRenderFailure = errors.New("render failure")

// Grid dimensions of the report.
const (
	Rows = 3
	Cols = 2
)

// Bar offsets, in bar widths, around each asset tick.
const (
	MomentumOffset      = -0.5
	MeanReversionOffset = 0.5
)

type Point struct {
	X, Y float64
}

// LineSeries is one plotted line, labelled in the legend.
type LineSeries struct {
	Label  string
	Points []Point
}

// BarSeries is one strategy's bars across the asset ticks. Offset is
// measured in bar widths from the tick.
type BarSeries struct {
	Label  string
	Values []float64
	Offset float64
}

// Panel is the content of one chart cell.
type Panel struct {
	Title  string
	XLabel string
	YLabel string

	Lines []LineSeries

	Ticks []string
	Bars  []BarSeries

	// ZeroLine draws a dashed reference at y=0.
	ZeroLine bool
}

// Layout is the full row-major grid of panels.
type Layout struct {
	Rows   int
	Cols   int
	Panels []Panel
}

// At returns the panel at row r, column c.
func (l Layout) At(r, c int) Panel {
	return l.Panels[r*l.Cols+c]
}

// Build computes the chart content for a report run. It uses the equity
// series and summaries for per-asset data and the comparison for asset
// ticks and aggregate annotations.
func Build(arts *artifact.Artifacts, cmp *compare.Comparison) (Layout, error) {
	if arts == nil || cmp == nil {
		return Layout{}, fmt.Errorf("%w: nothing to render", ErrRenderFailure)
	}
	for _, es := range []artifact.EquitySeries{arts.MomentumEquity, arts.MeanReversionEquity} {
		if es.Len() == 0 {
			return Layout{}, fmt.Errorf("%w: %s equity series has no rows", ErrRenderFailure, es.Strategy.Label())
		}
		if len(es.Assets) == 0 {
			return Layout{}, fmt.Errorf("%w: %s equity series has no assets", ErrRenderFailure, es.Strategy.Label())
		}
	}
	if cmp.N == 0 {
		return Layout{}, fmt.Errorf("%w: summaries have no assets", ErrRenderFailure)
	}
	mom, mr := arts.MomentumSummary, arts.MeanReversionSummary
	if mom.Len() != cmp.N || mr.Len() != cmp.N {
		return Layout{}, fmt.Errorf("%w: summaries do not match comparison of %d assets", ErrRenderFailure, cmp.N)
	}

	l := Layout{Rows: Rows, Cols: Cols}
	l.Panels = append(l.Panels,
		equityPanel("Momentum Strategy: Equity Curves", arts.MomentumEquity),
		equityPanel("Mean Reversion Strategy: Equity Curves", arts.MeanReversionEquity),
		barPanel(fmt.Sprintf("Sharpe Ratio by Asset (Momentum wins %d/%d)", cmp.Wins, cmp.N),
			"Sharpe Ratio", cmp.Assets, mom, mr, true,
			func(r artifact.SummaryRow) float64 { return r.Sharpe }),
		barPanel("Maximum Drawdown by Asset", "Max DD", cmp.Assets, mom, mr, false,
			func(r artifact.SummaryRow) float64 { return r.MaxDD }),
		barPanel("Total Return by Asset (%)", "Return (%)", cmp.Assets, mom, mr, true,
			func(r artifact.SummaryRow) float64 { return r.TotalReturn * 100 }),
		barPanel(fmt.Sprintf("Trade Count by Asset (%d vs %d)", cmp.Momentum.TotalTrades, cmp.MeanReversion.TotalTrades),
			"# Trades", cmp.Assets, mom, mr, false,
			func(r artifact.SummaryRow) float64 { return float64(r.Trades) }),
	)
	return l, nil
}

func equityPanel(title string, es artifact.EquitySeries) Panel {
	p := Panel{
		Title:  title,
		XLabel: "Bar Index",
		YLabel: "Equity ($)",
		Lines:  make([]LineSeries, len(es.Assets)),
	}
	for j, asset := range es.Assets {
		pts := make([]Point, es.Len())
		for i, bar := range es.BarIdx {
			pts[i] = Point{X: float64(bar), Y: es.Equity[j][i]}
		}
		p.Lines[j] = LineSeries{Label: asset, Points: pts}
	}
	return p
}

func barPanel(title, ylabel string, ticks []string, mom, mr artifact.StrategySummary, zero bool,
	value func(artifact.SummaryRow) float64) Panel {
	return Panel{
		Title:    title,
		YLabel:   ylabel,
		Ticks:    append([]string(nil), ticks...),
		ZeroLine: zero,
		Bars: []BarSeries{
			{Label: mom.Strategy.Label(), Values: column(mom, value), Offset: MomentumOffset},
			{Label: mr.Strategy.Label(), Values: column(mr, value), Offset: MeanReversionOffset},
		},
	}
}

func column(s artifact.StrategySummary, value func(artifact.SummaryRow) float64) []float64 {
	out := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = value(r)
	}
	return out
}
