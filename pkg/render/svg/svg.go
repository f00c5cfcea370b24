package svg

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/eulerdraw/pkg/layout"
	"github.com/matzehuels/eulerdraw/pkg/render"
)

// DefaultPadding surrounds the diagram, in diagram units.
const DefaultPadding = 50.0

// Palette colors curves in label order.
var Palette = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3",
	"#ff7f00", "#a65628", "#f781bf", "#999999",
}

const curveCSS = `
    .curve { transition: stroke-width 0.2s ease, fill-opacity 0.2s ease; }
    .curve:hover { stroke-width: 4; fill-opacity: 0.25; }`

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	shading     bool
	labels      bool
	zoneCenters bool
	padding     float64
	palette     []string
}

func WithShading() Option          { return func(r *renderer) { r.shading = true } }
func WithLabels() Option           { return func(r *renderer) { r.labels = true } }
func WithZoneCenters() Option      { return func(r *renderer) { r.zoneCenters = true } }
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = max(p, 0) } }
func WithPalette(colors ...string) Option {
	return func(r *renderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// Render writes l as an SVG document.
func Render(l layout.Layout, opts ...Option) []byte {
	r := renderer{padding: DefaultPadding, palette: Palette}
	for _, opt := range opts {
		opt(&r)
	}

	x, y := l.MinX-r.padding, l.MinY-r.padding
	w, h := l.Width+2*r.padding, l.Height+2*r.padding
	font := fontSize(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(x), num(y), num(w), num(h), w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", curveCSS)

	if r.shading && l.ShadedCount() > 0 {
		r.renderDefs(&buf, font)
		for _, z := range l.Zones {
			if z.Shaded && len(z.Rings) > 0 {
				fmt.Fprintf(&buf, `  <path class="shaded" data-zone="%s" d="%s" fill="url(#hatch)" fill-rule="evenodd" stroke="none"/>`+"\n",
					escape(z.Zone), ringsPath(z.Rings))
			}
		}
	}

	for i, c := range l.Curves {
		color := r.palette[i%len(r.palette)]
		fmt.Fprintf(&buf, `  <path class="curve" id="curve-%s" d="%s" fill="%s" fill-opacity="0.08" stroke="%s" stroke-width="%s"/>`+"\n",
			escape(c.Label), c.D, color, color, num(font/8))
	}

	if r.zoneCenters {
		for _, z := range l.Zones {
			if len(z.Rings) == 0 {
				continue
			}
			cx, cy := z.Center[0], z.Center[1]
			fmt.Fprintf(&buf, `  <circle class="zone-center" cx="%s" cy="%s" r="%s" fill="#333"/>`+"\n",
				num(cx), num(cy), num(font/6))
			fmt.Fprintf(&buf, `  <text class="zone-name" x="%s" y="%s" font-family="sans-serif" font-size="%s" text-anchor="middle" fill="#333">%s</text>`+"\n",
				num(cx), num(cy-font/3), num(font*0.6), escape(z.Zone))
		}
	}

	if r.labels {
		colors := make(map[string]string, len(l.Curves))
		for i, c := range l.Curves {
			colors[c.Label] = r.palette[i%len(r.palette)]
		}
		for _, a := range l.Labels {
			fmt.Fprintf(&buf, `  <text class="label" x="%s" y="%s" font-family="sans-serif" font-size="%s" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
				num(a.X), num(a.Y), num(font), colors[a.Label], escape(a.Label))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderDefs(buf *bytes.Buffer, font float64) {
	gap := font / 3
	fmt.Fprintf(buf, `  <defs><pattern id="hatch" patternUnits="userSpaceOnUse" width="%s" height="%s" patternTransform="rotate(45)">`+
		`<line x1="0" y1="0" x2="0" y2="%s" stroke="#888" stroke-width="%s"/></pattern></defs>`+"\n",
		num(gap), num(gap), num(gap), num(gap/3))
}

// RenderPNG renders l as PNG at the given scale.
func RenderPNG(ctx context.Context, l layout.Layout, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(ctx, Render(l, opts...), scale)
}

// RenderPDF renders l as PDF.
func RenderPDF(ctx context.Context, l layout.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, Render(l, opts...))
}

// fontSize scales text with the diagram.
func fontSize(l layout.Layout) float64 {
	return math.Max(12, math.Min(200, math.Max(l.Width, l.Height)/25))
}

func ringsPath(rings [][]layout.Point) string {
	var sb strings.Builder
	for _, ring := range rings {
		for i, p := range ring {
			if i == 0 {
				sb.WriteString("M")
			} else {
				sb.WriteString(" L")
			}
			sb.WriteString(num(p[0]))
			sb.WriteByte(',')
			sb.WriteString(num(p[1]))
		}
		sb.WriteString(" Z ")
	}
	return strings.TrimSpace(sb.String())
}

func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
