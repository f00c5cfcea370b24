package labels

import (
	"testing"

	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/euler"
)

func venn2(t *testing.T) *euler.Diagram {
	t.Helper()
	d := euler.MustParse("a b ab")
	dia, err := euler.NewDiagram(d, d, []euler.Curve{
		euler.NewCircle("a", curve.Pt(300, 300), 300),
		euler.NewCircle("b", curve.Pt(600, 300), 300),
	})
	if err != nil {
		t.Fatalf("NewDiagram() error = %v", err)
	}
	return dia
}

func TestPlace(t *testing.T) {
	got := Place(venn2(t))
	want := map[euler.Label]curve.Point{
		"a": curve.Pt(-150, 300),
		"b": curve.Pt(1050, 300),
	}
	if len(got) != len(want) {
		t.Fatalf("Place() = %v, want %d anchors", got, len(want))
	}
	for l, w := range want {
		if got[l].Distance(w) > 1 {
			t.Errorf("anchor %s = %v, want %v", l, got[l], w)
		}
	}
}

func TestAnchorOutsideCurve(t *testing.T) {
	c := euler.NewCircle("a", curve.Pt(0, 0), 100)
	p := Anchor(c, nil)
	if c.Region().Contains(p) {
		t.Errorf("Anchor() = %v lies inside the curve", p)
	}
	if d := p.Distance(curve.Pt(0, 0)); d < 100+MinOffset-1 {
		t.Errorf("anchor distance from center = %v, want >= %v", d, 100+MinOffset)
	}
}

func TestOffsetFor(t *testing.T) {
	tests := []struct {
		c    euler.Curve
		want float64
	}{
		{euler.NewCircle("a", curve.Pt(0, 0), 300), MinOffset},
		{euler.NewCircle("a", curve.Pt(0, 0), 600), 200},
		{euler.NewCircle("a", curve.Pt(0, 0), 3000), MaxOffset},
		{euler.NewPath("a", square()), MinOffset},
	}
	for _, tt := range tests {
		if got := offsetFor(tt.c); got != tt.want {
			t.Errorf("offsetFor(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func square() curve.BezPath {
	var p curve.BezPath
	p.MoveTo(curve.Pt(0, 0))
	p.LineTo(curve.Pt(100, 0))
	p.LineTo(curve.Pt(100, 100))
	p.LineTo(curve.Pt(0, 100))
	p.ClosePath()
	return p
}

func TestScore(t *testing.T) {
	others := []euler.Curve{euler.NewCircle("b", curve.Pt(0, 0), 100)}
	inside := score(curve.Pt(0, 0), others)
	outside := score(curve.Pt(500, 0), others)
	if inside <= outside {
		t.Errorf("score(inside) = %v, want > score(outside) = %v", inside, outside)
	}
	if got := score(curve.Pt(500, 0), nil); got != 0 {
		t.Errorf("score(no curves) = %v, want 0", got)
	}
}
