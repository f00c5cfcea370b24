package geometry

import (
	"math"

	"honnef.co/go/curve"
)

// SignedArea returns the shoelace area of ring. The sign follows the
// orientation of the ring.
func SignedArea(ring Ring) float64 {
	var sum float64
	n := len(ring)
	for i := range n {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// RingContains reports whether p lies inside ring or on its boundary.
func RingContains(ring Ring, p curve.Point) bool {
	return NewRegion(ring).Contains(p)
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b curve.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Hypot2()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Translate(ab.Mul(t)))
}

func orient(a, b, c curve.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(a, b, p curve.Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentsIntersect reports whether segments p1p2 and q1q2 share a point.
func SegmentsIntersect(p1, p2, q1, q2 curve.Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// SegmentCrossesRing reports whether segment ab touches any edge of ring.
func SegmentCrossesRing(a, b curve.Point, ring Ring) bool {
	n := len(ring)
	for i := range n {
		if SegmentsIntersect(a, b, ring[i], ring[(i+1)%n]) {
			return true
		}
	}
	return false
}

// PolylineCrossesRing reports whether any segment of line touches ring.
func PolylineCrossesRing(line []curve.Point, ring Ring) bool {
	for i := 1; i < len(line); i++ {
		if SegmentCrossesRing(line[i-1], line[i], ring) {
			return true
		}
	}
	return false
}

// IsSimpleRing reports whether ring has at least three points and no two
// non-adjacent edges touch.
func IsSimpleRing(ring Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	for i := range n {
		a1, a2 := ring[i], ring[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if SegmentsIntersect(a1, a2, ring[j], ring[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// Bounds returns the bounding box of pts.
func Bounds(pts []curve.Point) curve.Rect {
	if len(pts) == 0 {
		return curve.Rect{}
	}
	r := curve.NewRectFromPoints(pts[0], pts[0])
	for _, p := range pts[1:] {
		r = r.UnionPoint(p)
	}
	return r
}
