// Package render converts drawn diagrams into files.
//
// The [svg] subpackage writes a [layout.Layout] as SVG. [ToPDF] and [ToPNG]
// convert any SVG with the external rsvg-convert tool from librsvg:
//
//	out := svg.Render(l, svg.WithShading(), svg.WithLabels())
//	png, err := render.ToPNG(ctx, out, 2)
//
// The Modified Euler Dual has its own Graphviz renderer in package dual.
//
// [layout.Layout]: github.com/matzehuels/eulerdraw/pkg/layout.Layout
package render
