package geometry

import (
	"math"

	"honnef.co/go/curve"
)

// circleTolerance is the flattening tolerance for circles relative to their
// radius.
const circleTolerance = 0.003

// CirclePolygon flattens c into a ring.
func CirclePolygon(c curve.Circle) Ring {
	tol := math.Max(math.Abs(c.Radius)*circleTolerance, 1e-3)
	return FlattenPath(c.Path(tol), tol)
}

// FlattenPath approximates the first subpath of p by a ring whose distance
// from the true curve stays under tol.
func FlattenPath(p curve.BezPath, tol float64) Ring {
	var ring Ring
	for el := range p.Flatten(tol) {
		switch el.Kind {
		case curve.MoveToKind:
			if len(ring) > 0 {
				return dedupe(ring)
			}
			ring = append(ring, el.P0)
		case curve.LineToKind:
			ring = append(ring, el.P0)
		}
	}
	return dedupe(ring)
}

// SamplePath converts a closed path into a ring by sampling each cubic
// segment at ten parameter values and keeping line endpoints. Close elements
// are implied by the ring.
func SamplePath(p curve.BezPath) Ring {
	var ring Ring
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			if len(ring) == 0 {
				ring = append(ring, el.P0)
			}
		case curve.LineToKind:
			ring = append(ring, el.P0)
		case curve.QuadToKind:
			ring = append(ring, el.P1)
		case curve.CubicToKind:
			if len(ring) == 0 {
				continue
			}
			cb := curve.CubicBez{P0: ring[len(ring)-1], P1: el.P0, P2: el.P1, P3: el.P2}
			for i := range 10 {
				ring = append(ring, cb.Eval(0.01+0.1*float64(i)))
			}
			ring = append(ring, el.P2)
		}
	}
	return dedupe(ring)
}

// dedupe drops consecutive duplicates and a closing point equal to the first.
func dedupe(ring Ring) Ring {
	if len(ring) == 0 {
		return ring
	}
	out := Ring{ring[0]}
	for _, p := range ring[1:] {
		if !samePoint(p, out[len(out)-1]) {
			out = append(out, p)
		}
	}
	if len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

const pointEpsilon = 1e-9

func samePoint(a, b curve.Point) bool {
	return math.Abs(a.X-b.X) < pointEpsilon && math.Abs(a.Y-b.Y) < pointEpsilon
}

// RegularPolygon returns the n vertices of a regular polygon around center,
// in increasing angle order starting at phase radians.
func RegularPolygon(center curve.Point, radius float64, n int, phase float64) Ring {
	ring := make(Ring, n)
	for k := range n {
		th := phase + 2*math.Pi*float64(k)/float64(n)
		ring[k] = center.Translate(curve.VecFromAngle(th).Mul(radius))
	}
	return ring
}

// Smooth fits a closed Catmull-Rom spline through pts and returns it as a
// cubic Bézier path.
func Smooth(pts []curve.Point) curve.BezPath {
	n := len(pts)
	var p curve.BezPath
	if n == 0 {
		return p
	}
	p.MoveTo(pts[0])
	if n < 3 {
		for _, pt := range pts[1:] {
			p.LineTo(pt)
		}
		p.ClosePath()
		return p
	}
	for i := range n {
		p0 := pts[(i-1+n)%n]
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		p3 := pts[(i+2)%n]
		c1 := p1.Translate(p2.Sub(p0).Div(6))
		c2 := p2.Translate(p3.Sub(p1).Div(-6))
		p.CubicTo(c1, c2, p2)
	}
	p.ClosePath()
	return p
}
