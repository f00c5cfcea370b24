package layout

import (
	"cmp"
	"slices"
	"strings"

	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// FromDiagram exports d with the given label anchors. Anchors for labels
// without a curve are ignored.
func FromDiagram(d *euler.Diagram, anchors map[euler.Label]curve.Point) Layout {
	l := Layout{
		Version:  Version,
		Original: d.Original().Informal(),
		Actual:   d.Actual().Informal(),
		Curves:   []Curve{},
		Zones:    []Zone{},
	}

	var bounds curve.Rect
	first := true
	grow := func(r curve.Rect) {
		if first {
			bounds, first = r, false
			return
		}
		bounds = bounds.Union(r)
	}

	opts := curve.SVGOptions{}
	for _, c := range d.Curves() {
		out := Curve{Label: string(c.Label()), D: c.Shape().SVG(opts)}
		switch c := c.(type) {
		case *euler.Circle:
			out.Kind = KindCircle
			out.CX, out.CY, out.R = c.Center.X, c.Center.Y, c.Radius
		case *euler.Path:
			out.Kind = KindPath
		}
		l.Curves = append(l.Curves, out)
		grow(c.Bounds())

		if p, ok := anchors[c.Label()]; ok {
			l.Labels = append(l.Labels, Anchor{Label: string(c.Label()), X: p.X, Y: p.Y})
			grow(curve.NewRectFromPoints(p, p))
		}
	}

	for _, z := range d.Zones() {
		out := Zone{
			Zone:   z.Abstract().String(),
			Shaded: d.IsShaded(z.Abstract()),
			Rings:  [][]Point{},
		}
		if !z.IsEmpty() {
			c := z.VisualCenter()
			out.Center = Point{c.X, c.Y}
			for _, ring := range z.Region().Rings() {
				pts := make([]Point, len(ring))
				for i, p := range ring {
					pts[i] = Point{p.X, p.Y}
				}
				out.Rings = append(out.Rings, pts)
			}
		}
		l.Zones = append(l.Zones, out)
	}

	slices.SortFunc(l.Labels, func(a, b Anchor) int { return cmp.Compare(a.Label, b.Label) })
	if !first {
		l.MinX, l.MinY = bounds.X0, bounds.Y0
		l.Width, l.Height = bounds.Width(), bounds.Height()
	}
	return l
}

// Diagram rebuilds the diagram l was exported from.
func (l *Layout) Diagram() (*euler.Diagram, error) {
	original, err := parseDescription(l.Original)
	if err != nil {
		return nil, err
	}
	actual, err := parseDescription(l.Actual)
	if err != nil {
		return nil, err
	}

	curves := make([]euler.Curve, 0, len(l.Curves))
	for _, c := range l.Curves {
		lbl := euler.Label(c.Label)
		switch c.Kind {
		case KindCircle:
			curves = append(curves, euler.NewCircle(lbl, curve.Pt(c.CX, c.CY), c.R))
		case KindPath:
			shape, err := ParsePathData(c.D)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "curve %s", c.Label)
			}
			curves = append(curves, euler.NewPath(lbl, shape))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "curve %q has unknown kind %q", c.Label, c.Kind)
		}
	}
	return euler.NewDiagram(original, actual, curves)
}

// Anchors returns the label anchors keyed by label.
func (l *Layout) Anchors() map[euler.Label]curve.Point {
	out := make(map[euler.Label]curve.Point, len(l.Labels))
	for _, a := range l.Labels {
		out[euler.Label(a.Label)] = curve.Pt(a.X, a.Y)
	}
	return out
}

// parseDescription accepts the empty string as the empty description.
func parseDescription(s string) (euler.Description, error) {
	if strings.TrimSpace(s) == "" {
		return euler.Empty, nil
	}
	return euler.Parse(s)
}
