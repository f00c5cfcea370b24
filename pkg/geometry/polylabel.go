package geometry

import (
	"container/heap"
	"math"

	"honnef.co/go/curve"
)

// DefaultPrecision is the tolerance used for zone visual centers.
const DefaultPrecision = 1.0

type cell struct {
	center curve.Point
	h      float64 // half the cell size
	d      float64 // signed distance from center to the region boundary
	max    float64 // upper bound on d within the cell
}

func newCell(c curve.Point, h float64, r Region) *cell {
	d := r.SignedDistance(c)
	return &cell{center: c, h: h, d: d, max: d + h*math.Sqrt2}
}

// cellQueue is a max-heap on cell.max.
type cellQueue []*cell

func (q cellQueue) Len() int            { return len(q) }
func (q cellQueue) Less(i, j int) bool  { return q[i].max > q[j].max }
func (q cellQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x interface{}) { *q = append(*q, x.(*cell)) }

func (q *cellQueue) Pop() interface{} {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}

// VisualCenter returns the point of r farthest from all of its boundary
// rings, to within precision. Degenerate regions return the minimum corner
// of their bounds.
func VisualCenter(r Region, precision float64) curve.Point {
	b := r.Bounds()
	size := math.Min(b.Width(), b.Height())
	if size <= 0 || r.IsEmpty() {
		return curve.Pt(b.MinX(), b.MinY())
	}

	h := size / 2
	q := &cellQueue{}
	for x := b.MinX(); x < b.MaxX(); x += size {
		for y := b.MinY(); y < b.MaxY(); y += size {
			heap.Push(q, newCell(curve.Pt(x+h, y+h), h, r))
		}
	}

	best := newCell(r.Centroid(), 0, r)
	if bc := newCell(b.Center(), 0, r); bc.d > best.d {
		best = bc
	}

	for q.Len() > 0 {
		c := heap.Pop(q).(*cell)
		if c.d > best.d {
			best = c
		}
		if c.max-best.d <= precision {
			continue
		}

		h := c.h / 2
		for _, off := range [4]curve.Vec2{{X: -h, Y: -h}, {X: h, Y: -h}, {X: -h, Y: h}, {X: h, Y: h}} {
			heap.Push(q, newCell(c.center.Translate(off), h, r))
		}
	}

	return best.center
}
