package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/eulerdraw/pkg/cache"
	"github.com/matzehuels/eulerdraw/pkg/creator"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/layout"
	"github.com/matzehuels/eulerdraw/pkg/observability"
)

// Runner runs the pipeline with caching. It keeps no results between runs,
// so one Runner may serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides the per-entry cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner returns a runner. A nil keyer means [cache.DefaultKeyer] and a
// nil cache disables caching.
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

// Execute runs the whole pipeline within opts.Timeout.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	d, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		RunID:           uuid.NewString(),
		Description:     d,
		DescriptionHash: cache.HashString(d.Informal()),
	}
	logger := r.Logger.With("run", result.RunID)

	drawStart := time.Now()
	l, dr, hit, err := r.DrawWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, stageError("draw", err)
	}
	result.Layout = l
	result.Drawing = dr
	result.CacheInfo.LayoutHit = hit
	result.Stats.DrawTime = time.Since(drawStart)
	result.Stats.Curves = len(l.Curves)
	result.Stats.Zones = len(l.Zones)
	result.Stats.Shaded = l.ShadedCount()
	if dr != nil {
		result.Stats.Components = len(dr.Components)
		result.Stats.Steps = dr.StepCount()
	}

	logger.Info("drew diagram",
		"description", d.Informal(),
		"curves", result.Stats.Curves,
		"zones", result.Stats.Zones,
		"shaded", result.Stats.Shaded,
		"cached", hit,
		"duration", result.Stats.DrawTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, stageError("render", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DrawWithCacheInfo draws d with caching. The drawing is nil on a cache hit.
func (r *Runner) DrawWithCacheInfo(ctx context.Context, d euler.Description, opts Options) (layout.Layout, *creator.Drawing, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForDraw(); err != nil {
		return layout.Layout{}, nil, false, err
	}
	hooks := observability.Cache()

	key := r.Keyer.LayoutKey(cache.HashString(d.Informal()), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := layout.UnmarshalLayout(data); err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return l, nil, true, nil
			}
			// unreadable entries are redrawn and overwritten
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	l, dr, err := Draw(ctx, d, opts)
	if err != nil {
		return layout.Layout{}, nil, false, err
	}
	l.ID = cache.HashString(key)[:16]

	if data, err := layout.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLLayout)); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, dr, false, nil
}

// Draw is [Runner.DrawWithCacheInfo] without the cache hit info.
func (r *Runner) Draw(ctx context.Context, d euler.Description, opts Options) (layout.Layout, error) {
	l, _, _, err := r.DrawWithCacheInfo(ctx, d, opts)
	return l, err
}

// RenderWithCacheInfo renders l with caching. It reports a hit only when
// every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	data, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			break
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	pipeHooks := observability.Pipeline()
	start := time.Now()
	pipeHooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, l, opts)
	pipeHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is [Runner.RenderWithCacheInfo] without the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// stageError turns deadline errors into timeouts and gives uncoded errors
// an internal code.
func stageError(stage string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s timed out", stage)
	}
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "%s", stage)
}
