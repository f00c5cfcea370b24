package geometry

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// Router finds polylines that stay inside a region. It runs A* over a square
// grid laid across the region bounds, with eight-way moves.
type Router struct {
	Cells    int // grid cells along the longer side of the bounds
	MaxNodes int // maximum nodes to expand before giving up
}

const (
	DefaultRouteCells    = 64
	DefaultRouteMaxNodes = 50000
)

// NewRouter returns a router with default grid resolution and node limit.
func NewRouter() *Router {
	return &Router{
		Cells:    DefaultRouteCells,
		MaxNodes: DefaultRouteMaxNodes,
	}
}

type gridKey struct {
	X, Y int
}

type routeNode struct {
	key    gridKey
	g, h   float64
	parent *routeNode
	index  int
}

func (n *routeNode) f() float64 { return n.g + n.h }

type routeQueue []*routeNode

func (q routeQueue) Len() int { return len(q) }

func (q routeQueue) Less(i, j int) bool {
	if fi, fj := q[i].f(), q[j].f(); fi != fj {
		return fi < fj
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	if q[i].key.X != q[j].key.X {
		return q[i].key.X < q[j].key.X
	}
	return q[i].key.Y < q[j].key.Y
}

func (q routeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *routeQueue) Push(x interface{}) {
	n := x.(*routeNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *routeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[:n-1]
	return node
}

type grid struct {
	origin curve.Point
	step   float64
	area   Region
	inside map[gridKey]bool
}

func (g *grid) point(k gridKey) curve.Point {
	return curve.Pt(g.origin.X+float64(k.X)*g.step, g.origin.Y+float64(k.Y)*g.step)
}

func (g *grid) passable(k gridKey) bool {
	if v, ok := g.inside[k]; ok {
		return v
	}
	v := g.area.Contains(g.point(k))
	g.inside[k] = v
	return v
}

// snap returns the passable grid key nearest to p, searching a small
// neighbourhood around the cell containing p.
func (g *grid) snap(p curve.Point) (gridKey, bool) {
	cx := int(math.Round((p.X - g.origin.X) / g.step))
	cy := int(math.Round((p.Y - g.origin.Y) / g.step))
	best, found := gridKey{}, false
	bestDist := math.Inf(1)
	for r := 0; r <= 3 && !found; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				k := gridKey{cx + dx, cy + dy}
				if !g.passable(k) {
					continue
				}
				if d := g.point(k).Distance(p); d < bestDist {
					best, bestDist, found = k, d, true
				}
			}
		}
	}
	return best, found
}

var moves = [8]gridKey{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// Route returns a polyline from `from` to `to` whose interior points all lie
// inside area. The first and last points are exactly from and to.
func (rt *Router) Route(ctx context.Context, from, to curve.Point, area Region) ([]curve.Point, error) {
	b := area.Bounds()
	side := math.Max(b.Width(), b.Height())
	if side <= 0 {
		return nil, fmt.Errorf("route: empty area")
	}
	g := &grid{
		origin: curve.Pt(b.MinX(), b.MinY()),
		step:   side / float64(max(rt.Cells, 2)),
		area:   area,
		inside: make(map[gridKey]bool),
	}

	start, ok := g.snap(from)
	if !ok {
		return nil, fmt.Errorf("route: start point outside area")
	}
	goal, ok := g.snap(to)
	if !ok {
		return nil, fmt.Errorf("route: end point outside area")
	}

	goalPt := g.point(goal)
	open := &routeQueue{}
	heap.Init(open)
	closed := make(map[gridKey]bool)
	nodes := make(map[gridKey]*routeNode)

	startNode := &routeNode{key: start, h: g.point(start).Distance(goalPt)}
	heap.Push(open, startNode)
	nodes[start] = startNode

	explored := 0
	for open.Len() > 0 {
		explored++
		if explored > rt.MaxNodes {
			return nil, fmt.Errorf("route: exceeded node limit")
		}
		if explored%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := heap.Pop(open).(*routeNode)
		if current.key == goal {
			return g.reconstruct(current, from, to), nil
		}
		closed[current.key] = true

		cp := g.point(current.key)
		for _, m := range moves {
			nk := gridKey{current.key.X + m.X, current.key.Y + m.Y}
			if closed[nk] || !g.passable(nk) {
				continue
			}
			np := g.point(nk)
			if !area.Contains(cp.Midpoint(np)) {
				continue
			}
			tentative := current.g + cp.Distance(np)
			if existing, ok := nodes[nk]; ok {
				if tentative < existing.g {
					existing.g = tentative
					existing.parent = current
					heap.Fix(open, existing.index)
				}
				continue
			}
			n := &routeNode{key: nk, g: tentative, h: np.Distance(goalPt), parent: current}
			nodes[nk] = n
			heap.Push(open, n)
		}
	}

	return nil, fmt.Errorf("route: no path")
}

func (g *grid) reconstruct(end *routeNode, from, to curve.Point) []curve.Point {
	var keys []gridKey
	for n := end; n != nil; n = n.parent {
		keys = append(keys, n.key)
	}

	pts := []curve.Point{from}
	for i := len(keys) - 1; i >= 0; i-- {
		pts = append(pts, g.point(keys[i]))
	}
	pts = append(pts, to)
	return simplify(pts)
}

// simplify removes repeated points and interior points on a straight run.
func simplify(pts []curve.Point) []curve.Point {
	out := make([]curve.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && samePoint(out[len(out)-1], p) {
			continue
		}
		if len(out) >= 2 && math.Abs(orient(out[len(out)-2], out[len(out)-1], p)) < 1e-9 {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
