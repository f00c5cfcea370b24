package euler

import (
	"cmp"
	"slices"
	"sync"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"honnef.co/go/curve"
)

// Diagram is a drawn Euler diagram. Original is the description that was
// asked for and Actual the one the curves realize; zones of Actual missing
// from Original are shaded.
type Diagram struct {
	original Description
	actual   Description
	curves   []Curve // sorted by label

	zones   []*Zone // zones of actual without Outside, in zone order
	byZone  map[AbstractZone]*Zone
	outside *Zone

	boundsOnce sync.Once
	bounds     curve.Rect
}

// NewDiagram returns the diagram drawing actual with the given curves.
//
// It fails with an invariant violation when two curves share a label or when
// a zone of actual names a label that has no curve.
func NewDiagram(original, actual Description, curves []Curve) (*Diagram, error) {
	sorted := slices.Clone(curves)
	slices.SortStableFunc(sorted, func(a, b Curve) int {
		return cmp.Compare(a.Label(), b.Label())
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Label() == sorted[i-1].Label() {
			return nil, errors.Invariant("duplicate curve for label %s", sorted[i].Label())
		}
	}

	d := &Diagram{
		original: original,
		actual:   actual,
		curves:   sorted,
		byZone:   make(map[AbstractZone]*Zone, actual.Len()),
	}
	for _, az := range actual.Zones() {
		z, err := newZone(az, sorted)
		if err != nil {
			return nil, err
		}
		if az.IsOutside() {
			d.outside = z
			continue
		}
		d.zones = append(d.zones, z)
		d.byZone[az] = z
	}
	return d, nil
}

// EmptyDiagram returns the diagram with no curves.
func EmptyDiagram() *Diagram {
	d, _ := NewDiagram(Empty, Empty, nil)
	return d
}

// Original returns the description that was asked for.
func (d *Diagram) Original() Description { return d.original }

// Actual returns the description the curves realize.
func (d *Diagram) Actual() Description { return d.actual }

// Curves returns the curves of d sorted by label.
func (d *Diagram) Curves() []Curve { return slices.Clone(d.curves) }

// Curve returns the curve drawn for l.
func (d *Diagram) Curve(l Label) (Curve, bool) {
	i, ok := slices.BinarySearchFunc(d.curves, l, func(c Curve, l Label) int {
		return cmp.Compare(c.Label(), l)
	})
	if !ok {
		return nil, false
	}
	return d.curves[i], true
}

// Zones returns the zones of d other than the outside zone, in zone order.
func (d *Diagram) Zones() []*Zone { return slices.Clone(d.zones) }

// Outside returns the zone outside every curve.
func (d *Diagram) Outside() *Zone { return d.outside }

// Zone returns the zone realizing az. [Outside] maps to [Diagram.Outside].
func (d *Diagram) Zone(az AbstractZone) (*Zone, error) {
	if az.IsOutside() {
		return d.outside, nil
	}
	z, ok := d.byZone[az]
	if !ok {
		return nil, errors.Invariant("zone %s is not in diagram %q", az, d.actual.Informal())
	}
	return z, nil
}

// ShadedZones returns the zones drawn but not asked for.
func (d *Diagram) ShadedZones() []*Zone {
	var out []*Zone
	for _, z := range d.zones {
		if !d.original.Has(z.az) {
			out = append(out, z)
		}
	}
	return out
}

// IsShaded reports whether z is drawn but was not asked for.
func (d *Diagram) IsShaded(az AbstractZone) bool {
	return d.actual.Has(az) && !d.original.Has(az)
}

// Bounds returns the bounding box of all curve polygons. It is the zero
// rectangle for a diagram without curves.
func (d *Diagram) Bounds() curve.Rect {
	d.boundsOnce.Do(func() {
		for i, c := range d.curves {
			if i == 0 {
				d.bounds = c.Bounds()
				continue
			}
			d.bounds = d.bounds.Union(c.Bounds())
		}
	})
	return d.bounds
}

// Center returns the midpoint of Bounds.
func (d *Diagram) Center() curve.Point { return d.Bounds().Center() }

// Translate returns d with every curve moved by v.
func (d *Diagram) Translate(v curve.Vec2) *Diagram {
	return d.mapCurves(func(c Curve) Curve { return c.Translate(v) })
}

// Scale returns d with every curve scaled by ratio around pivot.
func (d *Diagram) Scale(ratio float64, pivot curve.Point) *Diagram {
	return d.mapCurves(func(c Curve) Curve { return c.Scale(ratio, pivot) })
}

func (d *Diagram) mapCurves(f func(Curve) Curve) *Diagram {
	curves := make([]Curve, len(d.curves))
	for i, c := range d.curves {
		curves[i] = f(c)
	}
	out, err := NewDiagram(d.original, d.actual, curves)
	if err != nil {
		// Labels are unchanged, so a valid diagram stays valid.
		panic(err)
	}
	return out
}

func (d *Diagram) String() string {
	return d.actual.String()
}
