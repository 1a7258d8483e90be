// Package pipeline runs the complete decode → select → order → render flow.
//
// The CLI and the HTTP API both go through a [Runner] so that caching,
// logging and observability hooks behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Decode: classify a raster into a [coverage.Map]
//  2. Select: evaluate every [plan.Candidate] and keep the best
//  3. Order: decompose costs and sort shots into firing order
//  4. Render: write the requested artifacts (JSON, mcfunction, PNG)
//
// Only the winning candidate of stage 2 is cached, keyed by the hash of the
// coverage map. A cache hit re-evaluates that one candidate instead of all
// of them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, f, pipeline.Options{
//	    Formats: []string{"json", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cannon/pkg/cache"
	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/order"
	"github.com/matzehuels/cannon/pkg/plan"
	"github.com/matzehuels/cannon/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultBackground is the background color of input images.
	DefaultBackground = coverage.DefaultBackground

	// DefaultScale is the pixel size of one cell in diagnostic images.
	DefaultScale = 1
)

// Format constants for output formats.
const (
	FormatJSON       = "json"
	FormatMCFunction = "mcfunction"
	FormatPNG        = "png"
)

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{FormatJSON, FormatMCFunction}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:       true,
	FormatMCFunction: true,
	FormatPNG:        true,
}

// Extension returns the file extension of an artifact format.
func Extension(format string) string {
	if format == FormatMCFunction {
		return ".mcfunction"
	}
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Decode options
	Background string `json:"background,omitempty"`

	// Select options
	Workers int  `json:"workers,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   int      `json:"scale,omitempty"`
	Caption bool     `json:"caption,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-"`
	OnScored func(plan.Summary) `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs, JSON output and HTTP headers.
	RunID string

	// Map is the decoded coverage map.
	Map *coverage.Map

	// Format is the name of the decoded image format.
	Format string

	// Selection holds the winner and, unless it came from the cache, the
	// summary of every candidate.
	Selection *plan.Selection

	// Sequence is the winner in firing order.
	Sequence *order.Sequence

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Required   int
	Shots      int
	DecodeTime time.Duration
	SelectTime time.Duration
	OrderTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the winning candidate came from cache
	RenderHit bool // Whether all cacheable artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, mcfunction, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent, so every stage may call it.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if _, err := coverage.ParseColor(o.Background); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 1 || o.Scale > render.MaxScale {
		return errors.New(errors.ErrCodeInvalidInput,
			"scale must be between 1 and %d, got %d", render.MaxScale, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one artifact format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		k.Scale = o.Scale
		k.Caption = o.Caption
	}
	return k
}

// renderOptions translates Options into diagnostic render options.
func (o *Options) renderOptions() []render.Option {
	opts := []render.Option{render.WithScale(o.Scale)}
	if o.Caption {
		opts = append(opts, render.WithCaption())
	}
	return opts
}
