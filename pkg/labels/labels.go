// Package labels places curve labels.
//
// A good anchor for the label of a curve lies just outside the curve, inside
// as few other curves as possible, and away from their boundaries. Candidates
// are taken by pushing every vertex of the curve's polygon outwards from its
// centroid.
package labels

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/euler"
)

const (
	// MinOffset and MaxOffset bound how far a candidate is pushed out.
	MinOffset = 150.0
	MaxOffset = 300.0

	// containPenalty outweighs any distance bonus.
	containPenalty = 2000.0
	// nearThreshold ignores curves the candidate is deeper inside than this.
	nearThreshold = -20.0
)

// Place returns a label anchor for every curve of d.
func Place(d *euler.Diagram) map[euler.Label]curve.Point {
	curves := d.Curves()
	out := make(map[euler.Label]curve.Point, len(curves))
	for i, c := range curves {
		others := make([]euler.Curve, 0, len(curves)-1)
		others = append(others, curves[:i]...)
		others = append(others, curves[i+1:]...)
		out[c.Label()] = Anchor(c, others)
	}
	return out
}

// Anchor returns the best label anchor for c among the given other curves.
// Ties go to the earliest polygon vertex.
func Anchor(c euler.Curve, others []euler.Curve) curve.Point {
	center := c.Region().Centroid()
	offset := offsetFor(c)

	var best curve.Point
	bestScore := math.Inf(1)
	for _, v := range c.Polygon() {
		dir := v.Sub(center)
		if dir.Hypot2() == 0 {
			continue
		}
		p := v.Translate(dir.Normalize().Mul(offset))
		if s := score(p, others); s < bestScore {
			best, bestScore = p, s
		}
	}
	if math.IsInf(bestScore, 1) {
		return center
	}
	return best
}

func offsetFor(c euler.Curve) float64 {
	m := MinOffset
	if circle, ok := c.(*euler.Circle); ok {
		m = circle.Radius / 3
	}
	return math.Max(MinOffset, math.Min(MaxOffset, m))
}

// score ranks p: each curve containing p costs containPenalty and the
// distance to the nearest boundary is subtracted. Distances are signed,
// negative inside.
func score(p curve.Point, others []euler.Curve) float64 {
	contained := 0
	nearest := math.Inf(1)
	for _, o := range others {
		r := o.Region()
		if r.Contains(p) {
			contained++
		}
		if d := -r.SignedDistance(p); d >= nearThreshold {
			nearest = math.Min(nearest, d)
		}
	}
	if math.IsInf(nearest, 1) {
		nearest = 0
	}
	return containPenalty*float64(contained) - nearest
}
