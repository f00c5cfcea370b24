package euler

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matzehuels/eulerdraw/pkg/geometry"
	"honnef.co/go/curve"
)

// Curve is a closed boundary drawn for one label. It is implemented by
// [*Circle] and [*Path].
//
// Curves are immutable. Translate and Scale return new curves, and the
// polygon of each curve is computed once on first use.
type Curve interface {
	Label() Label
	// Polygon returns the boundary ring used for region algebra.
	Polygon() geometry.Ring
	// Region returns the area enclosed by Polygon.
	Region() geometry.Region
	// Shape returns the renderable outline.
	Shape() curve.BezPath
	// Bounds returns the bounding box of Polygon.
	Bounds() curve.Rect
	Translate(v curve.Vec2) Curve
	Scale(ratio float64, pivot curve.Point) Curve
	String() string
}

type polygonCache struct {
	once    sync.Once
	polygon geometry.Ring
	region  geometry.Region
	bounds  curve.Rect
}

func (pc *polygonCache) get(compute func() geometry.Ring) *polygonCache {
	pc.once.Do(func() {
		pc.polygon = compute()
		pc.region = geometry.NewRegion(pc.polygon)
		pc.bounds = geometry.Bounds(pc.polygon)
	})
	return pc
}

// scaleAbout returns the transform that scales by ratio around pivot.
func scaleAbout(ratio float64, pivot curve.Point) curve.Affine {
	v := curve.Vec(pivot.X, pivot.Y)
	return curve.Translate(v).Mul(curve.Scale(ratio, ratio)).Mul(curve.Translate(v.Negate()))
}

// shapeTolerance is the flattening tolerance for rendered circle outlines.
const shapeTolerance = 0.1

// Circle is a circular curve.
type Circle struct {
	label  Label
	Center curve.Point
	Radius float64

	cache *polygonCache
}

var _ Curve = (*Circle)(nil)

// NewCircle returns a circle for l.
func NewCircle(l Label, center curve.Point, radius float64) *Circle {
	return &Circle{label: l, Center: center, Radius: radius, cache: &polygonCache{}}
}

func (c *Circle) Label() Label { return c.label }

// Circle returns c as a plain circle.
func (c *Circle) Circle() curve.Circle {
	return curve.Circle{Center: c.Center, Radius: c.Radius}
}

func (c *Circle) polygon() *polygonCache {
	return c.cache.get(func() geometry.Ring { return geometry.CirclePolygon(c.Circle()) })
}

func (c *Circle) Polygon() geometry.Ring  { return c.polygon().polygon }
func (c *Circle) Region() geometry.Region { return c.polygon().region }
func (c *Circle) Bounds() curve.Rect      { return c.polygon().bounds }

func (c *Circle) Shape() curve.BezPath {
	return c.Circle().Path(shapeTolerance)
}

func (c *Circle) Translate(v curve.Vec2) Curve {
	return NewCircle(c.label, c.Center.Translate(v), c.Radius)
}

func (c *Circle) Scale(ratio float64, pivot curve.Point) Curve {
	return NewCircle(c.label, c.Center.Transform(scaleAbout(ratio, pivot)), c.Radius*ratio)
}

func (c *Circle) String() string {
	return fmt.Sprintf("%s(%.2f, %.2f, r=%.2f)", c.label, c.Center.X, c.Center.Y, c.Radius)
}

// Path is a free-form closed curve made of line and cubic segments.
type Path struct {
	label Label
	shape curve.BezPath

	cache *polygonCache
}

var _ Curve = (*Path)(nil)

// NewPath returns a path curve for l. The shape should start with a MoveTo
// and describe a single closed subpath.
func NewPath(l Label, shape curve.BezPath) *Path {
	return &Path{label: l, shape: slices.Clone(shape), cache: &polygonCache{}}
}

func (p *Path) Label() Label { return p.label }

func (p *Path) polygon() *polygonCache {
	return p.cache.get(func() geometry.Ring { return geometry.SamplePath(p.shape) })
}

func (p *Path) Polygon() geometry.Ring  { return p.polygon().polygon }
func (p *Path) Region() geometry.Region { return p.polygon().region }
func (p *Path) Bounds() curve.Rect      { return p.polygon().bounds }

func (p *Path) Shape() curve.BezPath { return slices.Clone(p.shape) }

func (p *Path) Translate(v curve.Vec2) Curve {
	return NewPath(p.label, p.shape.Transform(curve.Translate(v)))
}

func (p *Path) Scale(ratio float64, pivot curve.Point) Curve {
	return NewPath(p.label, p.shape.Transform(scaleAbout(ratio, pivot)))
}

func (p *Path) String() string {
	return fmt.Sprintf("%s(path, %d elements)", p.label, len(p.shape))
}
