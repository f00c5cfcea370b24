package creator

import (
	"context"

	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/decompose"
	"github.com/matzehuels/eulerdraw/pkg/dual"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
)

const (
	// BaseRadius is the radius of the fixed first circles.
	BaseRadius = 300.0
	// RadiusReduction divides the clearance found by the piercing solver.
	RadiusReduction = 2.0
)

// atomic draws one component. seen collects every zone realized so far.
type atomic struct {
	c    *Creator
	desc euler.Description
	seen map[euler.AbstractZone]struct{}
	d    *euler.Diagram
}

func (c *Creator) drawAtomic(ctx context.Context, desc euler.Description, steps []decompose.Step) (*euler.Diagram, error) {
	a := &atomic{
		c:    c,
		desc: desc,
		seen: make(map[euler.AbstractZone]struct{}),
	}
	d, err := euler.NewDiagram(desc, euler.Empty.WithParent(desc.Parent()), nil)
	if err != nil {
		return nil, err
	}
	a.d = d

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		crv, err := a.drawCurve(ctx, step)
		if err != nil {
			return nil, err
		}
		if err := a.add(crv); err != nil {
			return nil, err
		}
	}
	return a.d, nil
}

func (a *atomic) add(crv euler.Curve) error {
	zones := make([]euler.AbstractZone, 0, len(a.seen))
	for z := range a.seen {
		zones = append(zones, z)
	}
	actual := euler.NewDescription(zones...).WithParent(a.desc.Parent())
	d, err := euler.NewDiagram(a.desc, actual, append(a.d.Curves(), crv))
	if err != nil {
		return err
	}
	a.d = d
	return nil
}

func (a *atomic) markSplit(step decompose.Step) {
	for _, z := range step.Split {
		a.seen[z.Add(step.Label)] = struct{}{}
	}
}

func (a *atomic) drawCurve(ctx context.Context, step decompose.Step) (euler.Curve, error) {
	l := step.Label
	n := len(a.d.Curves())

	var crv euler.Curve
	switch split := len(step.Split); {
	case n == 0:
		crv = euler.NewCircle(l, curve.Pt(BaseRadius, BaseRadius), BaseRadius)
	case split == 2 && n == 1:
		crv = euler.NewCircle(l, curve.Pt(BaseRadius*2, BaseRadius), BaseRadius)
	case split == 2:
		zones, err := a.zones(step.Split)
		if err != nil {
			return nil, err
		}
		crv = a.pierce(2, l, zones, true)
	case split == 4 && n == 2:
		crv = euler.NewCircle(l, curve.Pt(BaseRadius*1.5, BaseRadius*2), BaseRadius)
	case split == 4:
		zones, err := a.zones(step.Split)
		if err != nil {
			return nil, err
		}
		crv = a.pierce(4, l, zones, false)
	case split < 2:
		return nil, errors.Invariant("curve %s splits %d zones in atomic diagram %q", l, split, a.desc.Informal())
	}

	if crv != nil {
		a.markSplit(step)
		a.c.logger.Debug("drew curve", "label", l, "kind", "circle", "split", len(step.Split))
		return crv, nil
	}
	return a.drawFromDual(ctx, step)
}

// drawFromDual draws the curve for step along a cycle of the dual.
func (a *atomic) drawFromDual(ctx context.Context, step decompose.Step) (euler.Curve, error) {
	l := step.Label
	m, err := dual.New(ctx, a.d, dual.WithLogger(a.c.logger), dual.WithRouter(a.c.router))
	if err != nil {
		return nil, err
	}
	cyc, err := m.ComputeCycle(ctx, step.Split)
	if err != nil {
		return nil, err
	}

	var zones []*euler.Zone
	for _, v := range cyc.UniqueNodes() {
		zones = append(zones, v.Zone)
	}

	var crv euler.Curve
	kind := "path"
	switch cyc.LengthUnique() {
	case 2:
		if crv = a.pierce(2, l, zones, true); crv == nil {
			return nil, errors.Infeasible("curve %s is not 1-piercing", l)
		}
		kind = "circle"
	case 4:
		if crv = a.pierce(4, l, zones, false); crv == nil {
			return nil, errors.Infeasible("curve %s is not 2-piercing", l)
		}
		kind = "circle"
	default:
		crv = euler.NewPath(l, geometry.Smooth(cyc.Polygon))
	}

	for _, v := range cyc.Nodes {
		a.seen[v.Abstract().Add(l)] = struct{}{}
	}
	a.c.logger.Debug("drew curve", "label", l, "kind", kind, "cycle", cyc.LengthUnique())
	return crv, nil
}

func (a *atomic) zones(azs []euler.AbstractZone) ([]*euler.Zone, error) {
	zones := make([]*euler.Zone, len(azs))
	for i, az := range azs {
		z, err := a.d.Zone(az)
		if err != nil {
			return nil, err
		}
		zones[i] = z
	}
	return zones, nil
}

// pierce returns a circle for l centered on a point shared by the
// boundaries of targets, or nil when there is none. The circle keeps clear
// of every other zone, and of the outside zone too when withOutside is set.
func (a *atomic) pierce(n int, l euler.Label, targets []*euler.Zone, withOutside bool) euler.Curve {
	isTarget := make(map[euler.AbstractZone]bool, len(targets))
	regions := make([]geometry.Region, len(targets))
	for i, z := range targets {
		isTarget[z.Abstract()] = true
		regions[i] = z.Region()
	}

	pool := a.d.Zones()
	if withOutside {
		pool = append(pool, a.d.Outside())
	}
	var others []geometry.Region
	for _, z := range pool {
		if !isTarget[z.Abstract()] {
			others = append(others, z.Region())
		}
	}

	p, ok := geometry.Pierce(n, regions, others)
	if !ok {
		a.c.logger.Debug("no piercing", "label", l, "zones", len(targets))
		return nil
	}
	return euler.NewCircle(l, p.Center, p.Radius/RadiusReduction)
}
