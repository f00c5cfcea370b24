package dual

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/eulerdraw/pkg/geometry"
)

// DOTOptions configures [DOT].
type DOTOptions struct {
	// Cycle, when set, is drawn in bold red.
	Cycle *Cycle
	// Curves includes the diagram's curve outlines as invisible-node paths.
	Curves bool
}

// DOT writes m as an undirected Graphviz graph. Vertex positions are pinned
// to their coordinates so the output must be laid out with neato. The y axis
// is flipped since Graphviz grows upwards.
func DOT(m *MED, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph MED {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [color=grey40];\n")
	buf.WriteString("\n")

	onCycle := make(map[int]bool)
	cycleEdge := make(map[edgeKey]bool)
	if opts.Cycle != nil {
		for _, v := range opts.Cycle.Nodes {
			onCycle[v.ID] = true
		}
		for _, e := range opts.Cycle.Edges {
			cycleEdge[keyOf(e.From, e.To)] = true
		}
	}

	for _, v := range m.vertices {
		attrs := []string{
			fmt.Sprintf("label=%q", v.String()),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", v.Point.X, -v.Point.Y),
		}
		if v.IsOutside() {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		if onCycle[v.ID] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.edges {
		var attrs []string
		if e.Routed() {
			attrs = append(attrs, "style=dashed")
		}
		if cycleEdge[keyOf(e.From, e.To)] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  v%d -- v%d;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  v%d -- v%d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	if opts.Curves {
		buf.WriteString("\n")
		for _, c := range m.diagram.Curves() {
			writeOutline(&buf, string(c.Label()), c.Polygon())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeOutline draws ring as a chain of point nodes so the curves show up
// under the dual.
func writeOutline(buf *bytes.Buffer, name string, ring geometry.Ring) {
	if len(ring) == 0 {
		return
	}
	step := max(1, len(ring)/32)
	var ids []string
	for i := 0; i < len(ring); i += step {
		p := ring[i]
		id := fmt.Sprintf("%s_%d", name, len(ids))
		fmt.Fprintf(buf, "  %q [shape=point, width=0.02, label=\"\", pos=\"%.2f,%.2f!\"];\n", id, p.X, -p.Y)
		ids = append(ids, id)
	}
	for i, id := range ids {
		fmt.Fprintf(buf, "  %q -- %q [color=steelblue];\n", id, ids[(i+1)%len(ids)])
	}
}

// RenderSVG renders DOT source produced by [DOT] to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
