// Package svg writes a drawn diagram as an SVG document.
//
// Curves are stroked outlines with a light fill of the same color, taken
// from a fixed palette in label order. Optional layers, each enabled by an
// [Option]:
//
//   - shaded zones, filled with a hatch pattern ([WithShading])
//   - curve labels at their anchors ([WithLabels])
//   - zone names at their visual centers ([WithZoneCenters])
//
// [RenderPNG] and [RenderPDF] pass the SVG through rsvg-convert.
package svg
