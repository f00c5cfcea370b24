package pipeline

import (
	"context"

	"github.com/matzehuels/eulerdraw/pkg/creator"
	"github.com/matzehuels/eulerdraw/pkg/decompose"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
	"github.com/matzehuels/eulerdraw/pkg/labels"
	"github.com/matzehuels/eulerdraw/pkg/layout"
)

// Draw draws d, places its labels and returns the layout together with
// the drawing it came from.
func Draw(ctx context.Context, d euler.Description, opts Options) (layout.Layout, *creator.Drawing, error) {
	c, err := newCreator(opts)
	if err != nil {
		return layout.Layout{}, nil, err
	}
	dr, err := c.Build(ctx, d)
	if err != nil {
		return layout.Layout{}, nil, err
	}
	return layout.FromDiagram(dr.Diagram, labels.Place(dr.Diagram)), dr, nil
}

// Plan decomposes d into components and steps without drawing it.
func Plan(ctx context.Context, d euler.Description, opts Options) (*creator.Drawing, error) {
	c, err := newCreator(opts)
	if err != nil {
		return nil, err
	}
	return c.Plan(ctx, d)
}

// newCreator returns a creator for the drawing options.
func newCreator(opts Options) (*creator.Creator, error) {
	if err := opts.ValidateForDraw(); err != nil {
		return nil, err
	}
	strategy, err := decompose.StrategyByName(opts.Strategy)
	if err != nil {
		return nil, err
	}
	return creator.New(
		creator.WithLogger(opts.Logger),
		creator.WithStrategy(strategy),
		creator.WithRouter(&geometry.Router{Cells: opts.RouteCells, MaxNodes: opts.RouteMaxNodes}),
	), nil
}
