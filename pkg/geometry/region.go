package geometry

import (
	"math"

	"github.com/ctessum/geom"
	"honnef.co/go/curve"
)

// minArea is the area below which a region counts as empty. Boolean
// operations on flattened curves leave slivers of this size behind.
const minArea = 1e-6

// Ring is a closed polygon boundary. The edge from the last point back to the
// first is implicit.
type Ring []curve.Point

// Region is an area bounded by rings with even-odd nesting: a ring inside
// another ring is a hole. The zero value is the empty region.
type Region struct {
	poly geom.Polygon
}

// NewRegion builds a region from rings. Rings with fewer than three points
// are dropped.
func NewRegion(rings ...Ring) Region {
	poly := make(geom.Polygon, 0, len(rings))
	for _, r := range rings {
		if len(r) < 3 {
			continue
		}
		path := make(geom.Path, len(r))
		for i, p := range r {
			path[i] = geom.Point{X: p.X, Y: p.Y}
		}
		poly = append(poly, path)
	}
	return Region{poly: poly}
}

// RectRegion returns the region covered by rect.
func RectRegion(rect curve.Rect) Region {
	return NewRegion(Ring{
		curve.Pt(rect.MinX(), rect.MinY()),
		curve.Pt(rect.MaxX(), rect.MinY()),
		curve.Pt(rect.MaxX(), rect.MaxY()),
		curve.Pt(rect.MinX(), rect.MaxY()),
	})
}

func fromPolygon(p geom.Polygon) Region {
	out := make(geom.Polygon, 0, len(p))
	for _, path := range p {
		if len(path) >= 3 {
			out = append(out, path)
		}
	}
	return Region{poly: out}
}

// fromPolygonal flattens the result of a boolean operation into a Region.
func fromPolygonal(p geom.Polygonal) Region {
	if poly, ok := p.(geom.Polygon); ok {
		return fromPolygon(poly)
	}
	var out geom.Polygon
	for _, poly := range p.Polygons() {
		out = append(out, poly...)
	}
	return fromPolygon(out)
}

// Rings returns the boundary rings of r.
func (r Region) Rings() []Ring {
	rings := make([]Ring, len(r.poly))
	for i, path := range r.poly {
		ring := make(Ring, len(path))
		for j, p := range path {
			ring[j] = curve.Pt(p.X, p.Y)
		}
		rings[i] = ring
	}
	return rings
}

// Vertices returns every ring vertex of r in ring order.
func (r Region) Vertices() []curve.Point {
	var pts []curve.Point
	for _, path := range r.poly {
		for _, p := range path {
			pts = append(pts, curve.Pt(p.X, p.Y))
		}
	}
	return pts
}

// Area returns the area of r.
func (r Region) Area() float64 {
	if len(r.poly) == 0 {
		return 0
	}
	return math.Abs(r.poly.Area())
}

// IsEmpty reports whether r has no measurable area.
func (r Region) IsEmpty() bool {
	return r.Area() < minArea
}

// Bounds returns the bounding box of r, or the zero rectangle when r has no
// rings.
func (r Region) Bounds() curve.Rect {
	if len(r.poly) == 0 {
		return curve.Rect{}
	}
	b := r.poly.Bounds()
	return curve.Rect{X0: b.Min.X, Y0: b.Min.Y, X1: b.Max.X, Y1: b.Max.Y}
}

// Centroid returns the area centroid of r.
func (r Region) Centroid() curve.Point {
	if r.IsEmpty() {
		return r.Bounds().Center()
	}
	c := r.poly.Centroid()
	return curve.Pt(c.X, c.Y)
}

// Intersection returns the area covered by both r and o.
func (r Region) Intersection(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() {
		return Region{}
	}
	return fromPolygonal(r.poly.Intersection(o.poly))
}

// Difference returns the area covered by r but not by o.
func (r Region) Difference(o Region) Region {
	if r.IsEmpty() {
		return Region{}
	}
	if o.IsEmpty() {
		return r
	}
	return fromPolygonal(r.poly.Difference(o.poly))
}

// Union returns the area covered by r or o.
func (r Region) Union(o Region) Region {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return fromPolygonal(r.poly.Union(o.poly))
}

// Contains reports whether p lies inside r or on its boundary.
func (r Region) Contains(p curve.Point) bool {
	if len(r.poly) == 0 {
		return false
	}
	return geom.Point{X: p.X, Y: p.Y}.Within(r.poly) != geom.Outside
}

// BoundaryDistance returns the distance from p to the nearest boundary ring
// of r, holes included.
func (r Region) BoundaryDistance(p curve.Point) float64 {
	best := math.Inf(1)
	for _, path := range r.poly {
		n := len(path)
		for i := range n {
			a := path[i]
			b := path[(i+1)%n]
			d := SegmentDistance(p, curve.Pt(a.X, a.Y), curve.Pt(b.X, b.Y))
			if d < best {
				best = d
			}
		}
	}
	return best
}

// SignedDistance returns the boundary distance of p, positive when p is
// inside r and negative outside.
func (r Region) SignedDistance(p curve.Point) float64 {
	d := r.BoundaryDistance(p)
	if math.IsInf(d, 1) {
		return math.Inf(-1)
	}
	if r.Contains(p) {
		return d
	}
	return -d
}
