package euler

import (
	"math"
	"sync"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
	"honnef.co/go/curve"
)

// OutsideMargin is how far the outside zone extends past the bounds of all
// curves.
const OutsideMargin = 10.0

// Zone is the concrete region of an abstract zone in a drawn diagram: the
// points inside every containing curve and outside every excluding one.
type Zone struct {
	az         AbstractZone
	containing []Curve
	excluding  []Curve

	regionOnce sync.Once
	region     geometry.Region

	centerOnce sync.Once
	center     curve.Point

	verticesOnce sync.Once
	vertices     map[vertexKey]struct{}
}

type vertexKey struct{ X, Y int64 }

func newZone(az AbstractZone, curves []Curve) (*Zone, error) {
	z := &Zone{az: az}
	for _, c := range curves {
		if az.Contains(c.Label()) {
			z.containing = append(z.containing, c)
		} else {
			z.excluding = append(z.excluding, c)
		}
	}
	if len(z.containing) != az.Len() {
		return nil, errors.Invariant("zone %s has %d containing curves, want %d", az, len(z.containing), az.Len())
	}
	return z, nil
}

// Abstract returns the abstract zone z realizes.
func (z *Zone) Abstract() AbstractZone { return z.az }

// IsOutside reports whether z is the zone outside every curve.
func (z *Zone) IsOutside() bool { return z.az.IsOutside() }

// Containing returns the curves whose label is in the zone.
func (z *Zone) Containing() []Curve { return z.containing }

// Excluding returns the curves whose label is not in the zone.
func (z *Zone) Excluding() []Curve { return z.excluding }

// Region returns the area of z. For the outside zone it is the bounding box
// of all curves, grown by [OutsideMargin], minus every curve.
func (z *Zone) Region() geometry.Region {
	z.regionOnce.Do(func() {
		z.region = z.computeRegion()
	})
	return z.region
}

func (z *Zone) computeRegion() geometry.Region {
	var r geometry.Region
	if z.IsOutside() {
		if len(z.excluding) == 0 {
			return r
		}
		b := z.excluding[0].Bounds()
		for _, c := range z.excluding[1:] {
			b = b.Union(c.Bounds())
		}
		r = geometry.RectRegion(b.Inflate(OutsideMargin, OutsideMargin))
	} else {
		r = z.containing[0].Region()
		for _, c := range z.containing[1:] {
			r = r.Intersection(c.Region())
		}
	}
	for _, c := range z.excluding {
		if r.IsEmpty() {
			break
		}
		r = r.Difference(c.Region())
	}
	return r
}

// IsEmpty reports whether z has no area.
func (z *Zone) IsEmpty() bool { return z.Region().IsEmpty() }

// VisualCenter returns the point of z farthest from its boundary.
func (z *Zone) VisualCenter() curve.Point {
	z.centerOnce.Do(func() {
		z.center = geometry.VisualCenter(z.Region(), geometry.DefaultPrecision)
	})
	return z.center
}

// Contains reports whether p lies in z.
func (z *Zone) Contains(p curve.Point) bool { return z.Region().Contains(p) }

// ShortestDistanceToOtherZone returns the distance from p to the boundary of
// z, holes included.
func (z *Zone) ShortestDistanceToOtherZone(p curve.Point) float64 {
	return z.Region().BoundaryDistance(p)
}

func (z *Zone) roundedVertices() map[vertexKey]struct{} {
	z.verticesOnce.Do(func() {
		vs := z.Region().Vertices()
		z.vertices = make(map[vertexKey]struct{}, len(vs))
		for _, p := range vs {
			z.vertices[vertexKey{int64(math.Round(p.X)), int64(math.Round(p.Y))}] = struct{}{}
		}
	})
	return z.vertices
}

// IsTopologicallyAdjacent reports whether z and o differ by one label and
// their regions share a boundary vertex, compared after rounding to whole
// units.
func (z *Zone) IsTopologicallyAdjacent(o *Zone) bool {
	if !z.az.IsNeighbour(o.az) {
		return false
	}
	a, b := z.roundedVertices(), o.roundedVertices()
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

// SeparatingCurve returns the curve whose label is the only difference
// between z and o. It reports false unless z and o are neighbours.
func (z *Zone) SeparatingCurve(o *Zone) (Curve, bool) {
	l, ok := z.az.StraddledLabel(o.az)
	if !ok {
		return nil, false
	}
	for _, c := range z.containing {
		if c.Label() == l {
			return c, true
		}
	}
	for _, c := range o.containing {
		if c.Label() == l {
			return c, true
		}
	}
	return nil, false
}

func (z *Zone) String() string { return z.az.String() }
