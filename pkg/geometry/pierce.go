package geometry

import (
	"math"

	"honnef.co/go/curve"
)

const (
	// pierceTolerance is how close a candidate center must be to the
	// boundary of every target region.
	pierceTolerance = 0.5

	// minClearance is the smallest radius accepted as a piercing.
	minClearance = 1e-6
)

// Piercing is a circle centered on a point shared by the boundaries of a
// set of target regions. Radius is the clearance from the center to every
// non-target region.
type Piercing struct {
	Center curve.Point
	Radius float64
}

// Pierce searches the vertices of targets[0] for a point lying on the
// boundary of every target region and picks the one farthest from all
// regions in others. It reports false when n does not match the number of
// targets, when no shared boundary point exists, or when every candidate
// touches another region.
//
// When no non-empty region is in others, the clearance falls back to half
// the shortest side of the target bounds.
func Pierce(n int, targets, others []Region) (Piercing, bool) {
	if n < 2 || len(targets) != n {
		return Piercing{}, false
	}

	limit := math.Inf(1)
	for _, t := range targets {
		b := t.Bounds()
		limit = math.Min(limit, math.Min(b.Width(), b.Height())/2)
	}

	best := Piercing{Radius: math.Inf(-1)}
	for _, v := range targets[0].Vertices() {
		if !onAllBoundaries(v, targets[1:]) {
			continue
		}
		c := clearance(v, others)
		if math.IsInf(c, 1) {
			c = limit
		}
		if c > best.Radius {
			best = Piercing{Center: v, Radius: c}
		}
	}

	if best.Radius <= minClearance {
		return Piercing{}, false
	}
	return best, true
}

func onAllBoundaries(p curve.Point, regions []Region) bool {
	for _, r := range regions {
		if r.BoundaryDistance(p) > pierceTolerance {
			return false
		}
	}
	return true
}

func clearance(p curve.Point, regions []Region) float64 {
	c := math.Inf(1)
	for _, r := range regions {
		if r.IsEmpty() {
			continue
		}
		if r.Contains(p) {
			return 0
		}
		c = math.Min(c, r.BoundaryDistance(p))
	}
	return c
}
