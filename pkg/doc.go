// Package pkg holds the libraries behind eulerdraw, which draws Euler
// diagrams from abstract descriptions.
//
// # Overview
//
// An abstract description lists the zones a diagram must have, each written
// as the labels of the curves it lies inside: "a b ab" is two overlapping
// curves, "a ab" is b nested in a. eulerdraw splits the description into
// independent components, removes curves one at a time until each component
// is trivial, then draws the curves back in reverse order. Each new curve is
// placed as a circle where possible and otherwise traced along a cycle of
// the modified Euler dual of the diagram drawn so far. Zones that are drawn
// but not described are reported as shaded.
//
// The data flow:
//
//	"a b ab c ac"
//	      ↓
//	 [euler] parse the description
//	      ↓
//	 [decompose] components and insertion steps
//	      ↓
//	 [creator] draw each step, using [dual] when no circle fits
//	      ↓
//	 [labels] place curve labels
//	      ↓
//	 [layout] serializable geometry
//	      ↓
//	 [render/svg] SVG, PNG, PDF or JSON
//
// # Quick Start
//
//	d, _ := euler.Parse("a b ab c ac")
//	dia, _ := creator.Draw(ctx, d)
//	l := layout.FromDiagram(dia, labels.Place(dia))
//	out := svg.Render(l)
//
// [pipeline] runs the same steps with validation, caching and timeouts and
// is what the CLI and the HTTP API use.
//
// # Main Packages
//
// ## Model
//
// [euler] - Abstract zones and descriptions, and concrete diagrams of curves
// with their computed zones.
//
// [catalog] - Named example descriptions embedded as TOML.
//
// ## Drawing
//
// [decompose] - Component decomposition and curve removal strategies.
//
// [creator] - Builds a diagram step by step from a decomposition.
//
// [dual] - The modified Euler dual and its cycle search.
//
// [cycles] - Simple-cycle enumeration on small undirected graphs.
//
// [geometry] - Polygon regions, piercing points, visual centers and
// routing.
//
// [labels] - Label anchors for curves.
//
// ## Output
//
// [layout] - JSON layout format with SVG path data.
//
// [render/svg] - SVG writer; PNG and PDF by conversion.
//
// ## Infrastructure
//
// [pipeline] - Validated draw and render with cache lookups.
//
// [cache] - File, Redis and MongoDB caches for layouts and artifacts.
//
// [config] - TOML configuration file.
//
// [server] - HTTP API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by all packages.
//
// [euler]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/euler
// [catalog]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/catalog
// [decompose]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/decompose
// [creator]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/creator
// [dual]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/dual
// [cycles]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/cycles
// [geometry]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/geometry
// [labels]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/labels
// [layout]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/layout
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/render/svg
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/eulerdraw/pkg/errors
package pkg
