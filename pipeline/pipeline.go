// Package pipeline runs one report: load the artifacts, compare the
// strategies, print the text report and render the chart image.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/stratreport/artifact"
	"github.com/rustyeddy/stratreport/compare"
	"github.com/rustyeddy/stratreport/config"
	"github.com/rustyeddy/stratreport/pkg/id"
	"github.com/rustyeddy/stratreport/render"
	"github.com/rustyeddy/stratreport/summary"
	"gonum.org/v1/plot/vg"
)

// Options configures a run.
type Options struct {
	Config *config.Config

	// Source overrides the source described by Config.Artifacts.
	Source artifact.Source

	// Stdout receives the text report.
	Stdout io.Writer

	// Log defaults to a disabled logger.
	Log *zerolog.Logger

	// SkipImage stops after the text report.
	SkipImage bool
}

// Result is everything a run produced.
type Result struct {
	RunID      string
	Started    time.Time
	Artifacts  *artifact.Artifacts
	Comparison *compare.Comparison
	Figure     *render.Figure
	ImagePath  string
}

// Run executes the report stages in order and stops at the first error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	base := zerolog.Nop()
	if opts.Log != nil {
		base = *opts.Log
	}

	res := &Result{RunID: id.New()}
	started, err := id.Time(res.RunID)
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	res.Started = started
	log := base.With().Str("run_id", res.RunID).Logger()
	log.Debug().Time("started", started).Msg("report run started")

	src := opts.Source
	if src == nil {
		s, closeFn, err := OpenSource(cfg.Artifacts)
		if err != nil {
			return nil, fmt.Errorf("open artifacts: %w", err)
		}
		defer closeFn()
		src = s
	}

	log.Debug().Str("source", cfg.Artifacts.Source).Msg("loading artifacts")
	arts, err := artifact.NewLoader(src, cfg.Artifacts.Names).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	res.Artifacts = arts
	log.Info().
		Int("assets", arts.MomentumSummary.Len()).
		Int("momentum_bars", arts.MomentumEquity.Len()).
		Int("meanreversion_bars", arts.MeanReversionEquity.Len()).
		Msg("artifacts loaded")

	cmp, err := compare.Analyze(arts.MomentumSummary, arts.MeanReversionSummary, compare.Options{
		StartingCapital: cfg.StartingCapital,
		StrictAlignment: cfg.Compare.StrictAlignment,
	})
	if err != nil {
		return nil, fmt.Errorf("compare strategies: %w", err)
	}
	if !cmp.Aligned {
		log.Warn().
			Strs("momentum", arts.MomentumSummary.Assets()).
			Strs("meanreversion", arts.MeanReversionSummary.Assets()).
			Msg("asset order differs, comparing by position")
	}
	res.Comparison = cmp

	if err := summary.Print(stdout, arts, cmp); err != nil {
		return nil, fmt.Errorf("print summary: %w", err)
	}

	if opts.SkipImage {
		return res, nil
	}

	layout, err := render.Build(arts, cmp)
	if err != nil {
		return nil, err
	}
	r := render.NewRenderer()
	r.Width = vg.Length(cfg.Report.WidthIn) * vg.Inch
	r.Height = vg.Length(cfg.Report.HeightIn) * vg.Inch
	r.DPI = cfg.Report.DPI

	fig, err := r.Render(layout)
	if err != nil {
		return nil, err
	}
	res.Figure = fig

	path := cfg.Report.Output
	if err := fig.Save(path); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	res.ImagePath = path
	log.Info().
		Str("image", path).
		Dur("elapsed", time.Since(started)).
		Msg("report image written")

	return res, nil
}

// OpenSource builds the artifact source described by cfg. The returned
// close function is always non-nil.
func OpenSource(cfg config.ArtifactsConfig) (artifact.Source, func() error, error) {
	switch cfg.Source {
	case "", "csv":
		return artifact.NewCSVSource(cfg.Dir), func() error { return nil }, nil
	case "sqlite":
		s, err := artifact.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return s, s.Close, nil
	default:
		return nil, func() error { return nil }, fmt.Errorf("unknown artifact source %q", cfg.Source)
	}
}

// Kind names the error class of err, or "error" when it is none of the
// report error kinds.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, artifact.ErrArtifactMissing):
		return "ArtifactMissing"
	case errors.Is(err, artifact.ErrSchemaMismatch):
		return "SchemaMismatch"
	case errors.Is(err, compare.ErrLengthMismatch):
		return "LengthMismatch"
	case errors.Is(err, compare.ErrAlignmentMismatch):
		return "AlignmentMismatch"
	case errors.Is(err, render.ErrRenderFailure):
		return "RenderFailure"
	default:
		return "error"
	}
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch Kind(err) {
	case "":
		return 0
	case "ArtifactMissing":
		return 2
	case "SchemaMismatch":
		return 3
	case "LengthMismatch", "AlignmentMismatch":
		return 4
	case "RenderFailure":
		return 5
	default:
		return 1
	}
}
