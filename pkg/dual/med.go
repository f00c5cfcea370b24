package dual

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
)

const (
	// RingVertices is the number of vertices on the outside ring.
	RingVertices = 16
	// RingGap is the distance between the diagram bounds and the ring.
	RingGap = 100.0
)

// Vertex is a MED vertex. Ring vertices belong to the outside zone.
type Vertex struct {
	ID    int
	Zone  *euler.Zone
	Point curve.Point
}

// Abstract returns the abstract zone of v.
func (v Vertex) Abstract() euler.AbstractZone { return v.Zone.Abstract() }

// IsOutside reports whether v is a ring vertex.
func (v Vertex) IsOutside() bool { return v.Zone.IsOutside() }

func (v Vertex) String() string { return v.Zone.String() }

// Edge joins two vertices. Points runs from the point of From to the point
// of To and has at least two entries.
type Edge struct {
	From, To int
	Points   []curve.Point
}

// Routed reports whether e bends.
func (e Edge) Routed() bool { return len(e.Points) > 2 }

// MED is the modified Euler dual of a diagram.
type MED struct {
	diagram  *euler.Diagram
	vertices []Vertex
	edges    []Edge
	ring     []int // vertex IDs of the outside ring in order
	center   curve.Point
	radius   float64

	logger *log.Logger
	router *geometry.Router
}

// Option configures [New].
type Option func(*MED)

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(m *MED) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRouter sets the router used for bent edges.
func WithRouter(r *geometry.Router) Option {
	return func(m *MED) {
		if r != nil {
			m.router = r
		}
	}
}

// New builds the MED of d. It fails only when ctx is done while edges are
// being routed.
func New(ctx context.Context, d *euler.Diagram, opts ...Option) (*MED, error) {
	m := &MED{
		diagram: d,
		logger:  log.New(io.Discard),
		router:  geometry.NewRouter(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, z := range d.Zones() {
		if z.IsEmpty() {
			m.logger.Debug("skipping empty zone", "zone", z)
			continue
		}
		m.vertices = append(m.vertices, Vertex{ID: len(m.vertices), Zone: z, Point: z.VisualCenter()})
	}
	inside := len(m.vertices)

	if err := m.addInsideEdges(ctx, inside); err != nil {
		return nil, err
	}
	m.addRing(inside)
	m.addOutsideEdges(inside)
	return m, nil
}

func (m *MED) addInsideEdges(ctx context.Context, inside int) error {
	for i := range inside {
		for j := i + 1; j < inside; j++ {
			v1, v2 := m.vertices[i], m.vertices[j]
			if !v1.Zone.IsTopologicallyAdjacent(v2.Zone) {
				continue
			}
			pts, err := m.edgeShape(ctx, v1, v2)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				m.logger.Debug("dropping unroutable edge", "from", v1, "to", v2, "err", err)
				continue
			}
			m.edges = append(m.edges, Edge{From: v1.ID, To: v2.ID, Points: pts})
		}
	}
	return nil
}

// edgeShape returns a straight segment when it crosses the separating curve
// and no other, and otherwise a polyline routed through both zones.
func (m *MED) edgeShape(ctx context.Context, v1, v2 Vertex) ([]curve.Point, error) {
	sep, ok := v1.Zone.SeparatingCurve(v2.Zone)
	if ok && crossesOnly(v1.Point, v2.Point, sep, m.diagram.Curves()) {
		return []curve.Point{v1.Point, v2.Point}, nil
	}
	area := v1.Zone.Region().Union(v2.Zone.Region())
	return m.router.Route(ctx, v1.Point, v2.Point, area)
}

func crossesOnly(a, b curve.Point, sep euler.Curve, curves []euler.Curve) bool {
	if !geometry.SegmentCrossesRing(a, b, sep.Polygon()) {
		return false
	}
	for _, c := range curves {
		if c.Label() != sep.Label() && geometry.SegmentCrossesRing(a, b, c.Polygon()) {
			return false
		}
	}
	return true
}

// addRing places the outside ring around the bounds of the inside zones,
// starting at the leftmost point and turning with increasing angle.
func (m *MED) addRing(inside int) {
	var b curve.Rect
	for i, v := range m.vertices[:inside] {
		zb := v.Zone.Region().Bounds()
		if i == 0 {
			b = zb
			continue
		}
		b = b.Union(zb)
	}
	m.center = b.Center()
	m.radius = math.Hypot(b.Width(), b.Height())/2 + RingGap

	outside := m.diagram.Outside()
	for _, p := range geometry.RegularPolygon(m.center, m.radius, RingVertices, math.Pi) {
		id := len(m.vertices)
		m.vertices = append(m.vertices, Vertex{ID: id, Zone: outside, Point: p})
		m.ring = append(m.ring, id)
	}
	for i, id := range m.ring {
		next := m.ring[(i+1)%len(m.ring)]
		m.edges = append(m.edges, Edge{From: id, To: next, Points: []curve.Point{m.vertices[id].Point, m.vertices[next].Point}})
	}
}

// addOutsideEdges joins every zone touching the outside to the nearest ring
// vertex.
func (m *MED) addOutsideEdges(inside int) {
	outside := m.diagram.Outside()
	for _, v := range m.vertices[:inside] {
		if !v.Zone.IsTopologicallyAdjacent(outside) {
			continue
		}
		nearest := m.ring[0]
		best := math.Inf(1)
		for _, id := range m.ring {
			if d := v.Point.Distance(m.vertices[id].Point); d < best {
				nearest, best = id, d
			}
		}
		m.edges = append(m.edges, Edge{From: v.ID, To: nearest, Points: []curve.Point{v.Point, m.vertices[nearest].Point}})
	}
}

// Vertices returns the vertices of m: the zone vertices in zone order, then
// the ring.
func (m *MED) Vertices() []Vertex { return m.vertices }

// Edges returns the edges of m.
func (m *MED) Edges() []Edge { return m.edges }

// Ring returns the center and radius of the outside ring.
func (m *MED) Ring() (curve.Point, float64) { return m.center, m.radius }

// Diagram returns the diagram m was built from.
func (m *MED) Diagram() *euler.Diagram { return m.diagram }
