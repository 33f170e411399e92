package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultOutput is the image written by a report run.
const DefaultOutput = "hft_backtest_analysis.png"

var (
	gridColor = color.Gray{Y: 220}
	zeroColor = color.RGBA{R: 220, A: 255}
)

// Renderer draws a Layout onto an image canvas.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	DPI    int

	// BarWidth is a bar's width as a fraction of the spacing between
	// asset ticks. A bar pair spans 2*BarWidth, so it must not exceed 0.5.
	BarWidth float64
}

// NewRenderer returns a renderer for a 16x12 inch figure at 150 DPI.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:    16 * vg.Inch,
		Height:   12 * vg.Inch,
		DPI:      150,
		BarWidth: 0.35,
	}
}

// Figure is one rendered report. It keeps the layout it was drawn from.
type Figure struct {
	Layout Layout
	canvas *vgimg.Canvas
}

// Render draws every panel of l into a new Figure. Backend errors, and
// panics raised by the plotting library on degenerate input, are returned
// as ErrRenderFailure.
func (r *Renderer) Render(l Layout) (fig *Figure, err error) {
	if r.Width <= 0 || r.Height <= 0 || r.DPI <= 0 {
		return nil, fmt.Errorf("%w: invalid canvas %vx%v @ %d dpi", ErrRenderFailure, r.Width, r.Height, r.DPI)
	}
	if r.BarWidth <= 0 || r.BarWidth > 0.5 {
		return nil, fmt.Errorf("%w: bar width %v outside (0, 0.5]", ErrRenderFailure, r.BarWidth)
	}
	if l.Rows*l.Cols == 0 || len(l.Panels) != l.Rows*l.Cols {
		return nil, fmt.Errorf("%w: layout has %d panels for a %dx%d grid", ErrRenderFailure, len(l.Panels), l.Rows, l.Cols)
	}

	defer func() {
		if rec := recover(); rec != nil {
			fig, err = nil, fmt.Errorf("%w: %v", ErrRenderFailure, rec)
		}
	}()

	plots := make([][]*plot.Plot, l.Rows)
	for row := range plots {
		plots[row] = make([]*plot.Plot, l.Cols)
		for col := range plots[row] {
			p, err := r.plot(l.At(row, col))
			if err != nil {
				return nil, fmt.Errorf("%w: panel %q: %v", ErrRenderFailure, l.At(row, col).Title, err)
			}
			plots[row][col] = p
		}
	}

	img := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      l.Rows,
		Cols:      l.Cols,
		PadTop:    vg.Points(12),
		PadBottom: vg.Points(12),
		PadLeft:   vg.Points(12),
		PadRight:  vg.Points(12),
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			plots[row][col].Draw(canvases[row][col])
		}
	}

	return &Figure{Layout: l, canvas: img}, nil
}

func (r *Renderer) plot(panel Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Horizontal.Color = gridColor
	grid.Vertical.Color = gridColor
	if len(panel.Bars) > 0 {
		grid.Vertical.Color = nil
	}
	p.Add(grid)

	for i, ls := range panel.Lines {
		xys := make(plotter.XYs, len(ls.Points))
		for k, pt := range ls.Points {
			xys[k] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", ls.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(ls.Label, line)
	}

	for i, bs := range panel.Bars {
		bars, err := r.bars(bs, plotutil.Color(i))
		if err != nil {
			return nil, err
		}
		p.Add(bars)
		p.Legend.Add(bs.Label, bars)
	}
	if len(panel.Ticks) > 0 {
		p.NominalX(panel.Ticks...)
	}

	if panel.ZeroLine {
		n := float64(len(panel.Ticks))
		zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: n - 0.5, Y: 0}})
		if err != nil {
			return nil, fmt.Errorf("zero line: %w", err)
		}
		zero.Color = zeroColor
		zero.Width = vg.Points(1)
		zero.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(zero)
	}

	return p, nil
}

func (r *Renderer) bars(bs BarSeries, c color.Color) (*barSet, error) {
	for _, v := range bs.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("bars %q: invalid value %v", bs.Label, v)
		}
	}
	return &barSet{Values: bs.Values, Width: r.BarWidth, Offset: bs.Offset, Color: c}, nil
}

// barSet draws one bar per asset tick. Geometry is in data units, with
// tick i at x=i, so bars scale with the axis instead of the canvas.
type barSet struct {
	Values []float64
	Width  float64 // fraction of tick spacing
	Offset float64 // in bar widths
	Color  color.Color
}

// span returns the x extent of the bar at tick i.
func (b *barSet) span(i int) (float64, float64) {
	mid := float64(i) + b.Offset*b.Width
	return mid - b.Width/2, mid + b.Width/2
}

func (b *barSet) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, v := range b.Values {
		x0, x1 := b.span(i)
		y0, y1 := math.Min(0, v), math.Max(0, v)
		pts := []vg.Point{
			{X: trX(x0), Y: trY(y0)},
			{X: trX(x0), Y: trY(y1)},
			{X: trX(x1), Y: trY(y1)},
			{X: trX(x1), Y: trY(y0)},
		}
		c.FillPolygon(b.Color, c.ClipPolygonXY(pts))
	}
}

func (b *barSet) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.Values))-0.5
	for _, v := range b.Values {
		ymin = math.Min(ymin, v)
		ymax = math.Max(ymax, v)
	}
	return xmin, xmax, ymin, ymax
}

func (b *barSet) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(b.Color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	})
}

// WriteTo encodes the figure as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	return vgimg.PngCanvas{Canvas: f.canvas}.WriteTo(w)
}

// Save writes the PNG to path. The image is written to a temporary file in
// the same directory and renamed into place, so a failed write leaves any
// existing file untouched.
func (f *Figure) Save(path string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
