package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cannon/pkg/cache"
	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/observability"
	"github.com/matzehuels/cannon/pkg/order"
	"github.com/matzehuels/cannon/pkg/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → select → order → render pipeline.
func (r *Runner) Execute(ctx context.Context, in io.Reader, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID)

	// Stage 1: Decode
	start := time.Now()
	m, format, err := r.Decode(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Map, result.Format = m, format
	result.Stats.DecodeTime = time.Since(start)
	result.Stats.Required = m.Total()
	logger.Info("decoded image",
		"format", format,
		"required", m.Total(),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Select
	start = time.Now()
	sel, hit, err := r.PlanWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	result.Selection = sel
	result.Stats.SelectTime = time.Since(start)
	result.CacheInfo.PlanHit = hit
	best := sel.Best
	logger.Info("selected candidate",
		"candidate", best.Candidate,
		"shots", best.ShotCount,
		"accuracy", fmt.Sprintf("%.3f", best.Accuracy),
		"efficiency", fmt.Sprintf("%.3f", best.Efficiency),
		"cached", hit,
		"duration", result.Stats.SelectTime)
	if best.Miss > 0 {
		logger.Warn("winning plan strikes cells outside the silhouette", "miss", best.Miss)
	}

	// Stage 3: Order
	start = time.Now()
	seq, err := r.Order(ctx, best)
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	result.Sequence = seq
	result.Stats.OrderTime = time.Since(start)
	result.Stats.Shots = len(seq.Steps)
	logger.Debug("ordered shots",
		"shots", len(seq.Steps),
		"orientation", seq.Orientation,
		"duration", result.Stats.OrderTime)

	// Stage 4: Render
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.RunID, m, best, seq, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode reads an image and classifies it against opts.Background.
func (r *Runner) Decode(ctx context.Context, in io.Reader, opts Options) (*coverage.Map, string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", err
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx)
	start := time.Now()

	bg, err := coverage.ParseColor(opts.Background)
	if err != nil {
		hooks.OnDecodeComplete(ctx, "", 0, time.Since(start), err)
		return nil, "", err
	}
	m, format, err := coverage.Decode(in, bg)
	required := 0
	if m != nil {
		required = m.Total()
	}
	hooks.OnDecodeComplete(ctx, format, required, time.Since(start), err)
	return m, format, err
}

// PlanWithCacheInfo selects the best candidate for m and reports whether it
// came from the cache. A cached winner is re-evaluated alone, so the returned
// Selection has no Scored summaries in that case.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, m *coverage.Map, opts Options) (*plan.Selection, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.PlanKey(cache.Hash(m.Bytes()))

	if !opts.Refresh {
		if c, ok := r.cachedCandidate(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "plan")
			return &plan.Selection{Best: plan.Evaluate(m, c)}, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	hooks := observability.Pipeline()
	cands := plan.Candidates()
	hooks.OnSelectStart(ctx, len(cands))
	start := time.Now()

	sel, err := plan.Select(ctx, m, plan.SelectOptions{
		Workers:    opts.Workers,
		Candidates: cands,
		OnScored: func(s plan.Summary) {
			hooks.OnCandidateScored(ctx, s.Candidate.String(), s.ShotCount, s.Accuracy)
			if opts.OnScored != nil {
				opts.OnScored(s)
			}
		},
	})
	if err != nil {
		hooks.OnSelectComplete(ctx, "", time.Since(start), err)
		return nil, false, err
	}
	hooks.OnSelectComplete(ctx, sel.Best.Candidate.String(), time.Since(start), nil)

	if data, err := json.Marshal(sel.Best.Candidate); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.PlanTTL); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return sel, false, nil
}

// Plan is a convenience wrapper that discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, m *coverage.Map, opts Options) (*plan.Selection, error) {
	sel, _, err := r.PlanWithCacheInfo(ctx, m, opts)
	return sel, err
}

func (r *Runner) cachedCandidate(ctx context.Context, key string) (plan.Candidate, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
		return plan.Candidate{}, false
	}
	if !hit {
		return plan.Candidate{}, false
	}
	var c plan.Candidate
	if err := json.Unmarshal(data, &c); err != nil || !c.Valid() {
		return plan.Candidate{}, false
	}
	return c, true
}

// Order puts the shots of res into firing order.
func (r *Runner) Order(ctx context.Context, res *plan.Result) (*order.Sequence, error) {
	start := time.Now()
	seq, err := order.Order(res)
	shots := 0
	if seq != nil {
		shots = len(seq.Steps)
	}
	observability.Pipeline().OnOrderComplete(ctx, shots, time.Since(start), err)
	return seq, err
}

// RenderWithCacheInfo renders every requested format and reports whether all
// cacheable artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, runID string, m *coverage.Map, res *plan.Result, seq *order.Sequence, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	planHash := r.planHash(m, res.Candidate)
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached, anyCacheable := true, false

	for _, format := range opts.Formats {
		var key string
		if cacheable(format) {
			anyCacheable = true
			key = r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
		}

		data, err := RenderFormat(format, runID, m, res, seq, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if key != "" {
			if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached && anyCacheable, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, runID string, m *coverage.Map, res *plan.Result, seq *order.Sequence, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, runID, m, res, seq, opts)
	return artifacts, err
}

func (r *Runner) planHash(m *coverage.Map, c plan.Candidate) string {
	data, _ := json.Marshal(c)
	return cache.HashParts(m.Bytes(), data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
