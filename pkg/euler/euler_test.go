package euler

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"honnef.co/go/curve"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"a", false},
		{"λ", false},
		{"", true},
		{"ab", true},
		{" ", true},
		{"\t", true},
	}

	for _, tt := range tests {
		_, err := ParseLabel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLabel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestAbstractZoneOperators(t *testing.T) {
	ab := MustZone("ba")
	if got := ab.Key(); got != "ab" {
		t.Errorf("Key() = %q, want %q", got, "ab")
	}
	if got := ab.Add("c"); got != MustZone("abc") {
		t.Errorf("Add(c) = %v, want abc", got)
	}
	if got := ab.Add("a"); got != ab {
		t.Errorf("Add(a) = %v, want ab", got)
	}
	if got := ab.Remove("a"); got != MustZone("b") {
		t.Errorf("Remove(a) = %v, want b", got)
	}
	if got := ab.Remove("z"); got != ab {
		t.Errorf("Remove(z) = %v, want ab", got)
	}
	if got := ab.Remove("a").Remove("b"); got != Outside {
		t.Errorf("Remove(a).Remove(b) = %v, want outside", got)
	}
	if got := ab.Union(MustZone("bc")); got != MustZone("abc") {
		t.Errorf("Union(bc) = %v, want abc", got)
	}
	if got := MustZone("abc").Minus(MustZone("bd")); got != MustZone("ac") {
		t.Errorf("Minus(bd) = %v, want ac", got)
	}
	if got := MustZone("abc").RemoveAll([]Label{"a", "c"}); got != MustZone("b") {
		t.Errorf("RemoveAll(a, c) = %v, want b", got)
	}
	if got := ab.Labels(); !slices.Equal(got, []Label{"a", "b"}) {
		t.Errorf("Labels() = %v, want [a b]", got)
	}
	if Outside.String() != "∅" {
		t.Errorf("Outside.String() = %q, want ∅", Outside.String())
	}
}

func TestAbstractZoneLaws(t *testing.T) {
	zones := []AbstractZone{Outside, MustZone("a"), MustZone("ab"), MustZone("abc"), MustZone("bd")}
	labels := []Label{"a", "b", "e"}

	for _, z := range zones {
		for _, l := range labels {
			if !z.Add(l).Contains(l) {
				t.Errorf("%v.Add(%s).Contains(%s) = false", z, l, l)
			}
			if z.Remove(l).Contains(l) {
				t.Errorf("%v.Remove(%s).Contains(%s) = true", z, l, l)
			}
			if !z.Contains(l) && z.Add(l).Remove(l) != z {
				t.Errorf("%v.Add(%s).Remove(%s) = %v, want %v", z, l, l, z.Add(l).Remove(l), z)
			}
		}
		for _, o := range zones {
			if z.Union(o) != o.Union(z) {
				t.Errorf("%v.Union(%v) is not commutative", z, o)
			}
			if got, want := z.Compare(o), -o.Compare(z); got != want {
				t.Errorf("%v.Compare(%v) = %d, want %d", z, o, got, want)
			}
		}
	}
}

func TestAbstractZoneCompare(t *testing.T) {
	zones := []AbstractZone{MustZone("ab"), MustZone("c"), Outside, MustZone("b"), MustZone("a"), MustZone("ac")}
	slices.SortFunc(zones, AbstractZone.Compare)

	want := []AbstractZone{Outside, MustZone("a"), MustZone("b"), MustZone("c"), MustZone("ab"), MustZone("ac")}
	if !slices.Equal(zones, want) {
		t.Errorf("sorted = %v, want %v", zones, want)
	}
}

func TestStraddledLabel(t *testing.T) {
	tests := []struct {
		a, b   string
		want   Label
		wantOK bool
	}{
		{"a", "ab", "b", true},
		{"abc", "ac", "b", true},
		{"a", "b", "", false},
		{"a", "abc", "", false},
		{"ab", "cd", "", false},
		{"ab", "bcd", "", false},
	}

	for _, tt := range tests {
		a, b := MustZone(tt.a), MustZone(tt.b)
		got, ok := a.StraddledLabel(b)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("StraddledLabel(%s, %s) = %q, %v, want %q, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
		if a.IsNeighbour(b) != tt.wantOK {
			t.Errorf("IsNeighbour(%s, %s) = %v, want %v", tt.a, tt.b, !tt.wantOK, tt.wantOK)
		}
	}
	if !Outside.IsNeighbour(MustZone("a")) {
		t.Error("Outside.IsNeighbour(a) = false, want true")
	}
}

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		code errors.Code
	}{
		{"venn2", "ab a b", "a b ab", ""},
		{"duplicates", "a a  b", "a b", ""},
		{"unordered token", "cba", "abc", ""},
		{"blank", "   ", "", errors.ErrCodeInvalidInput},
		{"repeated label", "a aa", "", errors.ErrCodeInvalidInput},
		{"control character", "a\x00b", "", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.in)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("Parse(%q) error = %v, want code %s", tt.in, err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got := d.Informal(); got != tt.want {
				t.Errorf("Informal() = %q, want %q", got, tt.want)
			}
			again := MustParse(d.Informal())
			if !again.Equal(d) {
				t.Errorf("Parse(Informal()) = %v, want %v", again, d)
			}
		})
	}
}

func TestDescriptionQueries(t *testing.T) {
	d := MustParse("a b c ab bc")

	if got := d.Labels(); !slices.Equal(got, []Label{"a", "b", "c"}) {
		t.Errorf("Labels() = %v, want [a b c]", got)
	}
	if got := d.Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}
	if got := d.ZoneCount("b"); got != 3 {
		t.Errorf("ZoneCount(b) = %d, want 3", got)
	}
	if !d.Has(Outside) {
		t.Error("Has(Outside) = false, want true")
	}
	if d.Has(MustZone("ac")) {
		t.Error("Has(ac) = true, want false")
	}
	if got := d.Without("b").Informal(); got != "a c" {
		t.Errorf("Without(b) = %q, want %q", got, "a c")
	}
	if diff := cmp.Diff([]AbstractZone{MustZone("a"), MustZone("ab")}, d.ZonesWith("a"), cmp.Comparer(func(x, y AbstractZone) bool { return x == y })); diff != "" {
		t.Errorf("ZonesWith(a) mismatch (-want +got):\n%s", diff)
	}
	if !Empty.IsEmpty() || Empty.String() != "∅" {
		t.Errorf("Empty = %v, want ∅", Empty)
	}
	var zero Description
	if !zero.Equal(Empty) {
		t.Error("zero Description is not Empty")
	}
}

func TestSlot(t *testing.T) {
	host := MustParse("a b")
	guest := MustParse("c d")

	got, err := host.Slot(MustZone("a"), guest)
	if err != nil {
		t.Fatalf("Slot() error = %v", err)
	}
	if want := "a b ac ad"; got.Informal() != want {
		t.Errorf("Slot(a) = %q, want %q", got.Informal(), want)
	}

	got, err = host.Slot(Outside, guest)
	if err != nil {
		t.Fatalf("Slot(outside) error = %v", err)
	}
	if want := "a b c d"; got.Informal() != want {
		t.Errorf("Slot(outside) = %q, want %q", got.Informal(), want)
	}

	if _, err := host.Slot(MustZone("ab"), guest); !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("Slot(ab) error = %v, want %s", err, errors.ErrCodeInvariant)
	}

	plus, err := host.WithParent(MustZone("x")).Plus(guest.WithParent(MustZone("b")))
	if err != nil {
		t.Fatalf("Plus() error = %v", err)
	}
	if want := "a b bc bd"; plus.Informal() != want {
		t.Errorf("Plus() = %q, want %q", plus.Informal(), want)
	}
	if plus.Parent() != MustZone("x") {
		t.Errorf("Plus().Parent() = %v, want x", plus.Parent())
	}
}

func TestCircleTransforms(t *testing.T) {
	c := NewCircle("a", curve.Pt(10, 0), 5)

	moved := c.Translate(curve.Vec(1, 2)).(*Circle)
	if moved.Center != curve.Pt(11, 2) || moved.Radius != 5 {
		t.Errorf("Translate() = %v, want center (11, 2) radius 5", moved)
	}

	scaled := c.Scale(2, curve.Pt(0, 0)).(*Circle)
	if scaled.Center != curve.Pt(20, 0) || scaled.Radius != 10 {
		t.Errorf("Scale() = %v, want center (20, 0) radius 10", scaled)
	}

	b := c.Bounds()
	if math.Abs(b.MinX()-5) > 0.1 || math.Abs(b.MaxX()-15) > 0.1 {
		t.Errorf("Bounds() = %v, want x range [5, 15]", b)
	}
	if c.Label() != "a" || c.Translate(curve.Vec(1, 0)).Label() != "a" {
		t.Error("transforms changed the label")
	}
}

func TestPathTransforms(t *testing.T) {
	var shape curve.BezPath
	shape.MoveTo(curve.Pt(0, 0))
	shape.LineTo(curve.Pt(10, 0))
	shape.LineTo(curve.Pt(10, 10))
	shape.LineTo(curve.Pt(0, 10))
	shape.ClosePath()

	p := NewPath("p", shape)
	if got := len(p.Polygon()); got != 4 {
		t.Fatalf("len(Polygon()) = %d, want 4", got)
	}
	if got := p.Region().Area(); math.Abs(got-100) > 1e-6 {
		t.Errorf("Region().Area() = %v, want 100", got)
	}

	scaled := p.Scale(2, curve.Pt(5, 5))
	b := scaled.Bounds()
	if b.MinX() != -5 || b.MaxX() != 15 || b.MinY() != -5 || b.MaxY() != 15 {
		t.Errorf("Scale().Bounds() = %v, want [-5, 15]²", b)
	}

	moved := p.Translate(curve.Vec(100, 0))
	if got := moved.Bounds().MinX(); got != 100 {
		t.Errorf("Translate().Bounds().MinX() = %v, want 100", got)
	}
	if got := p.Bounds().MinX(); got != 0 {
		t.Errorf("original moved: Bounds().MinX() = %v, want 0", got)
	}
}

func venn2(t *testing.T) *Diagram {
	t.Helper()
	d := MustParse("a b ab")
	dia, err := NewDiagram(d, d, []Curve{
		NewCircle("b", curve.Pt(600, 300), 300),
		NewCircle("a", curve.Pt(300, 300), 300),
	})
	if err != nil {
		t.Fatalf("NewDiagram() error = %v", err)
	}
	return dia
}

func TestDiagramZones(t *testing.T) {
	dia := venn2(t)

	if got := dia.Curves(); got[0].Label() != "a" || got[1].Label() != "b" {
		t.Errorf("Curves() = %v, want sorted by label", got)
	}
	if got := len(dia.Zones()); got != 3 {
		t.Fatalf("len(Zones()) = %d, want 3", got)
	}
	for _, z := range dia.Zones() {
		if z.IsEmpty() {
			t.Errorf("zone %v is empty", z)
		}
		if got, want := len(z.Containing()), z.Abstract().Len(); got != want {
			t.Errorf("zone %v has %d containing curves, want %d", z, got, want)
		}
		if c := z.VisualCenter(); !z.Contains(c) {
			t.Errorf("zone %v does not contain its visual center %v", z, c)
		}
	}

	ab, err := dia.Zone(MustZone("ab"))
	if err != nil {
		t.Fatalf("Zone(ab) error = %v", err)
	}
	if c := ab.VisualCenter(); math.Abs(c.X-450) > 2 || math.Abs(c.Y-300) > 20 {
		t.Errorf("Zone(ab).VisualCenter() = %v, want near (450, 300)", c)
	}
	if got := ab.ShortestDistanceToOtherZone(curve.Pt(450, 300)); math.Abs(got-150) > 1 {
		t.Errorf("ShortestDistanceToOtherZone() = %v, want about 150", got)
	}

	if _, err := dia.Zone(MustZone("c")); !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("Zone(c) error = %v, want %s", err, errors.ErrCodeInvariant)
	}

	out, err := dia.Zone(Outside)
	if err != nil || out != dia.Outside() {
		t.Fatalf("Zone(Outside) = %v, %v, want the outside zone", out, err)
	}
	if out.Contains(curve.Pt(300, 300)) {
		t.Error("outside zone contains a point inside a")
	}
	if !out.Contains(curve.Pt(-5, 300)) {
		t.Error("outside zone does not contain a point in its margin")
	}
}

func TestZoneAdjacency(t *testing.T) {
	dia := venn2(t)
	a, _ := dia.Zone(MustZone("a"))
	b, _ := dia.Zone(MustZone("b"))
	ab, _ := dia.Zone(MustZone("ab"))

	if !a.IsTopologicallyAdjacent(ab) {
		t.Error("a.IsTopologicallyAdjacent(ab) = false, want true")
	}
	if a.IsTopologicallyAdjacent(b) {
		t.Error("a.IsTopologicallyAdjacent(b) = true, want false")
	}
	if !dia.Outside().IsTopologicallyAdjacent(a) {
		t.Error("outside.IsTopologicallyAdjacent(a) = false, want true")
	}

	c, ok := a.SeparatingCurve(ab)
	if !ok || c.Label() != "b" {
		t.Errorf("SeparatingCurve() = %v, %v, want b", c, ok)
	}
	if _, ok := a.SeparatingCurve(b); ok {
		t.Error("SeparatingCurve(a, b) ok = true, want false")
	}
}

func TestDiagramShading(t *testing.T) {
	orig := MustParse("a b")
	actual := MustParse("a b ab")
	dia, err := NewDiagram(orig, actual, []Curve{
		NewCircle("a", curve.Pt(300, 300), 300),
		NewCircle("b", curve.Pt(600, 300), 300),
	})
	if err != nil {
		t.Fatalf("NewDiagram() error = %v", err)
	}

	shaded := dia.ShadedZones()
	if len(shaded) != 1 || shaded[0].Abstract() != MustZone("ab") {
		t.Errorf("ShadedZones() = %v, want [ab]", shaded)
	}
	if !dia.IsShaded(MustZone("ab")) || dia.IsShaded(MustZone("a")) {
		t.Error("IsShaded() disagrees with ShadedZones()")
	}
}

func TestNewDiagramErrors(t *testing.T) {
	d := MustParse("a ab")

	_, err := NewDiagram(d, d, []Curve{NewCircle("a", curve.Pt(0, 0), 1)})
	if !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("missing curve: error = %v, want %s", err, errors.ErrCodeInvariant)
	}

	_, err = NewDiagram(d, d, []Curve{
		NewCircle("a", curve.Pt(0, 0), 1),
		NewCircle("a", curve.Pt(5, 0), 1),
		NewCircle("b", curve.Pt(0, 0), 1),
	})
	if !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("duplicate curve: error = %v, want %s", err, errors.ErrCodeInvariant)
	}
}

func TestDiagramTransforms(t *testing.T) {
	dia := venn2(t)

	if c := dia.Center(); math.Abs(c.X-450) > 0.5 || math.Abs(c.Y-300) > 0.5 {
		t.Errorf("Center() = %v, want near (450, 300)", c)
	}

	moved := dia.Translate(curve.Vec(1000, 0))
	if got := moved.Center().X - dia.Center().X; math.Abs(got-1000) > 1e-6 {
		t.Errorf("Translate() moved center by %v, want 1000", got)
	}

	scaled := dia.Scale(0.5, dia.Center())
	if got, want := scaled.Bounds().Width(), dia.Bounds().Width()/2; math.Abs(got-want) > 1e-6 {
		t.Errorf("Scale().Bounds().Width() = %v, want %v", got, want)
	}
	if !scaled.Actual().Equal(dia.Actual()) {
		t.Errorf("Scale() changed the description to %v", scaled.Actual())
	}

	if got := EmptyDiagram().Bounds(); got != (curve.Rect{}) {
		t.Errorf("EmptyDiagram().Bounds() = %v, want zero", got)
	}
}
