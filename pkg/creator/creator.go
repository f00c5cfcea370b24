package creator

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/eulerdraw/pkg/decompose"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
	"github.com/matzehuels/eulerdraw/pkg/observability"
)

// Creator draws diagrams. It holds no state between calls and may be used
// from several goroutines.
type Creator struct {
	logger   *log.Logger
	strategy decompose.Strategy
	router   *geometry.Router
}

// Option configures a [Creator].
type Option func(*Creator)

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Creator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrategy sets the label decomposition strategy.
func WithStrategy(s decompose.Strategy) Option {
	return func(c *Creator) {
		if s != nil {
			c.strategy = s
		}
	}
}

// WithRouter sets the router used for bent dual edges.
func WithRouter(r *geometry.Router) Option {
	return func(c *Creator) {
		if r != nil {
			c.router = r
		}
	}
}

// New returns a creator using [decompose.ICurves] and discarding logs
// unless configured otherwise.
func New(opts ...Option) *Creator {
	c := &Creator{
		logger:   log.New(io.Discard),
		strategy: decompose.ICurves,
		router:   geometry.NewRouter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draw draws d with a default [Creator].
func Draw(ctx context.Context, d euler.Description) (*euler.Diagram, error) {
	return New().Draw(ctx, d)
}

// Drawing is a finished diagram together with how it was built.
type Drawing struct {
	Diagram    *euler.Diagram
	Components []euler.Description
	// Steps holds the insertion-ordered steps of each component.
	Steps [][]decompose.Step
}

// StepCount returns the number of curves drawn.
func (dr *Drawing) StepCount() int {
	n := 0
	for _, s := range dr.Steps {
		n += len(s)
	}
	return n
}

// Draw returns a diagram realizing d.
func (c *Creator) Draw(ctx context.Context, d euler.Description) (*euler.Diagram, error) {
	dr, err := c.Build(ctx, d)
	if err != nil {
		return nil, err
	}
	return dr.Diagram, nil
}

// Build draws d and reports its components and steps. It reports the
// decomposition and drawing stages to the registered pipeline hooks.
func (c *Creator) Build(ctx context.Context, d euler.Description) (*Drawing, error) {
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnDecomposeStart(ctx, d.Informal())
	parts, steps, err := c.plan(ctx, d)
	count := 0
	for _, s := range steps {
		count += len(s)
	}
	hooks.OnDecomposeComplete(ctx, len(parts), count, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	hooks.OnDrawStart(ctx, count)
	dia, err := c.draw(ctx, parts, steps)
	if err != nil {
		hooks.OnDrawComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnDrawComplete(ctx, len(dia.Zones()), len(dia.ShadedZones()), time.Since(start), nil)

	return &Drawing{Diagram: dia, Components: parts, Steps: steps}, nil
}

// Plan decomposes d without drawing it. The returned drawing has no
// diagram.
func (c *Creator) Plan(ctx context.Context, d euler.Description) (*Drawing, error) {
	parts, steps, err := c.plan(ctx, d)
	if err != nil {
		return nil, err
	}
	return &Drawing{Components: parts, Steps: steps}, nil
}

// plan splits d into components and orders the steps of each, in
// insertion order.
func (c *Creator) plan(ctx context.Context, d euler.Description) ([]euler.Description, [][]decompose.Step, error) {
	dec := decompose.New(c.strategy, c.logger)

	parts, err := dec.Components(ctx, d)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Debug("decomposed", "description", d.Informal(), "components", len(parts))

	steps := make([][]decompose.Step, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := dec.Steps(part)
			if err != nil {
				return err
			}
			slices.Reverse(s)
			steps[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return parts, steps, nil
}

// draw draws every component in parallel and folds them into one diagram.
func (c *Creator) draw(ctx context.Context, parts []euler.Description, steps [][]decompose.Step) (*euler.Diagram, error) {
	diagrams := make([]*euler.Diagram, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			dia, err := c.drawAtomic(gctx, part, steps[i])
			if err != nil {
				return err
			}
			diagrams[i] = dia
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc := diagrams[0]
	scores := make(map[euler.AbstractZone]int)
	for _, in := range diagrams[1:] {
		var err error
		if acc, err = c.embed(acc, in, scores); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
