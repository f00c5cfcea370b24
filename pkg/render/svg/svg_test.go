package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/eulerdraw/pkg/layout"
)

func sample() layout.Layout {
	return layout.Layout{
		Version:  layout.Version,
		Original: "a b",
		Actual:   "a b ab",
		MinX:     0,
		MinY:     0,
		Width:    900,
		Height:   600,
		Curves: []layout.Curve{
			{Label: "a", Kind: layout.KindCircle, CX: 300, CY: 300, R: 300, D: "M600,300 L300,600 L0,300 L300,0 Z"},
			{Label: "b", Kind: layout.KindCircle, CX: 600, CY: 300, R: 300, D: "M900,300 L600,600 L300,300 L600,0 Z"},
		},
		Zones: []layout.Zone{
			{Zone: "a", Center: layout.Point{200, 300}, Rings: [][]layout.Point{{{0, 300}, {300, 0}, {450, 150}, {300, 300}}}},
			{Zone: "ab", Shaded: true, Center: layout.Point{450, 300}, Rings: [][]layout.Point{{{450, 150}, {600, 300}, {450, 450}, {300, 300}}}},
			{Zone: "b", Center: layout.Point{700, 300}},
		},
		Labels: []layout.Anchor{{Label: "a", X: -150, Y: 300}, {Label: "b", X: 1050, Y: 300}},
	}
}

// elements counts start elements by name, failing on malformed XML.
func elements(t *testing.T, doc []byte) map[string]int {
	t.Helper()
	counts := map[string]int{}
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return counts
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, doc)
		}
		if se, ok := tok.(xml.StartElement); ok {
			counts[se.Name.Local]++
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want map[string]int
	}{
		{"plain", nil, map[string]int{"svg": 1, "path": 2, "text": 0, "circle": 0, "pattern": 0}},
		{"shading", []Option{WithShading()}, map[string]int{"path": 3, "pattern": 1}},
		{"labels", []Option{WithLabels()}, map[string]int{"text": 2}},
		{"centers", []Option{WithZoneCenters()}, map[string]int{"circle": 2, "text": 2}},
		{"all", []Option{WithShading(), WithLabels(), WithZoneCenters()}, map[string]int{"path": 3, "text": 4, "circle": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := elements(t, Render(sample(), tt.opts...))
			for el, n := range tt.want {
				if got[el] != n {
					t.Errorf("<%s> count = %d, want %d", el, got[el], n)
				}
			}
		})
	}
}

func TestRenderViewBox(t *testing.T) {
	out := string(Render(sample(), WithPadding(10)))
	if !strings.Contains(out, `viewBox="-10 -10 920 620"`) {
		t.Errorf("viewBox missing from:\n%s", out)
	}
	out = string(Render(sample()))
	if !strings.Contains(out, `width="1000" height="700"`) {
		t.Errorf("default padding size missing from:\n%s", out)
	}
}

func TestRenderPalette(t *testing.T) {
	out := string(Render(sample(), WithPalette("red"), WithLabels()))
	if strings.Count(out, `stroke="red"`) != 2 {
		t.Errorf("custom palette not applied:\n%s", out)
	}
	if !strings.Contains(out, `fill="red">a</text>`) {
		t.Errorf("label color does not follow its curve:\n%s", out)
	}
}

func TestRenderNoShadedZones(t *testing.T) {
	l := sample()
	l.Zones[1].Shaded = false
	if got := elements(t, Render(l, WithShading())); got["pattern"] != 0 {
		t.Errorf("<pattern> count = %d, want 0", got["pattern"])
	}
}

func TestEscape(t *testing.T) {
	l := sample()
	l.Curves[0].Label = "&"
	l.Labels[0].Label = "&"
	elements(t, Render(l, WithLabels()))
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		1.5:     "1.5",
		-0.001:  "0",
		100:     "100",
		2.346:   "2.35",
		-12.126: "-12.13",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %s, want %s", in, got, want)
		}
	}
}
