package dual

import (
	"context"
	"slices"

	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/cycles"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
)

// maxCandidates caps the cycles inspected by [MED.ComputeCycle].
const maxCandidates = 50_000

// Cycle is a simple cycle of the MED together with the polygon traced by
// its edges. The polygon is counter-clockwise in the y-down frame used for
// drawing, that is, it has positive signed area.
type Cycle struct {
	Nodes   []Vertex
	Edges   []Edge
	Polygon geometry.Ring
}

// UniqueNodes returns the nodes of c with repeated zones removed. Only ring
// vertices can repeat.
func (c *Cycle) UniqueNodes() []Vertex {
	var out []Vertex
	seen := make(map[euler.AbstractZone]bool, len(c.Nodes))
	for _, v := range c.Nodes {
		if seen[v.Abstract()] {
			continue
		}
		seen[v.Abstract()] = true
		out = append(out, v)
	}
	return out
}

// LengthUnique returns the number of distinct zones on c.
func (c *Cycle) LengthUnique() int { return len(c.UniqueNodes()) }

// Zones returns the distinct abstract zones on c.
func (c *Cycle) Zones() []euler.AbstractZone {
	var out []euler.AbstractZone
	for _, v := range c.UniqueNodes() {
		out = append(out, v.Abstract())
	}
	return out
}

type edgeKey struct{ u, v int }

func keyOf(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

func (m *MED) graph() (*cycles.Graph, map[edgeKey]int) {
	g := cycles.New(len(m.vertices))
	index := make(map[edgeKey]int, len(m.edges))
	for i, e := range m.edges {
		g.AddEdge(e.From, e.To)
		index[keyOf(e.From, e.To)] = i
	}
	return g, index
}

// ComputeCycle returns the shortest valid cycle through all of the given
// zones. A cycle is valid when it bounds a simple polygon that contains no
// MED vertex off the cycle. It returns an Infeasible error when no valid
// cycle exists or the search gives up.
func (m *MED) ComputeCycle(ctx context.Context, targets []euler.AbstractZone) (*Cycle, error) {
	want := make(map[euler.AbstractZone]bool, len(targets))
	for _, az := range targets {
		want[az] = true
	}

	start := -1
	if len(m.ring) > 0 {
		start = m.ring[0]
	}
	present := make(map[euler.AbstractZone]bool, len(m.vertices))
	for _, v := range m.vertices {
		present[v.Abstract()] = true
	}
	for _, az := range targets {
		if !present[az] {
			return nil, errors.Infeasible("zone %s has no vertex in the dual", az)
		}
	}
	for _, v := range m.vertices {
		if !v.IsOutside() && want[v.Abstract()] {
			start = v.ID
			break
		}
	}
	if start < 0 {
		return nil, errors.Infeasible("dual of %s has no vertices", m.diagram.Actual().Informal())
	}

	g, index := m.graph()
	tried := 0
	for path := range g.Through(ctx, start, 0) {
		if tried++; tried > maxCandidates {
			m.logger.Debug("giving up cycle search", "targets", targets, "tried", maxCandidates)
			break
		}
		if !covers(m.vertices, path, want) {
			continue
		}
		if c, ok := m.trace(path, index); ok {
			m.logger.Debug("found cycle", "targets", targets, "length", len(path), "tried", tried)
			return c, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, errors.Infeasible("no valid cycle through %v", targets)
}

func covers(vertices []Vertex, path []int, want map[euler.AbstractZone]bool) bool {
	seen := 0
	got := make(map[euler.AbstractZone]bool, len(want))
	for _, id := range path {
		az := vertices[id].Abstract()
		if want[az] && !got[az] {
			got[az] = true
			seen++
		}
	}
	return seen == len(want)
}

// trace builds the cycle for path and reports whether it is valid.
func (m *MED) trace(path []int, index map[edgeKey]int) (*Cycle, bool) {
	c := &Cycle{}
	var ring geometry.Ring
	for i, id := range path {
		next := path[(i+1)%len(path)]
		e := m.edges[index[keyOf(id, next)]]
		pts := e.Points
		if e.From != id {
			pts = slices.Clone(pts)
			slices.Reverse(pts)
		}
		ring = append(ring, pts[:len(pts)-1]...)
		c.Nodes = append(c.Nodes, m.vertices[id])
		c.Edges = append(c.Edges, e)
	}

	ring = distinct(ring)
	if !geometry.IsSimpleRing(ring) {
		return nil, false
	}
	if geometry.SignedArea(ring) < 0 {
		slices.Reverse(ring)
	}

	on := make(map[int]bool, len(path))
	for _, id := range path {
		on[id] = true
	}
	for _, v := range m.vertices {
		if !on[v.ID] && geometry.RingContains(ring, v.Point) {
			return nil, false
		}
	}

	c.Polygon = ring
	return c, true
}

// distinct drops repeated points, keeping the first occurrence.
func distinct(ring geometry.Ring) geometry.Ring {
	type key struct{ x, y float64 }
	seen := make(map[key]bool, len(ring))
	out := ring[:0:0]
	for _, p := range ring {
		k := key{p.X, p.Y}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// Contains reports whether p lies inside the polygon of c.
func (c *Cycle) Contains(p curve.Point) bool { return geometry.RingContains(c.Polygon, p) }
