// Package layout is the serialized form of a drawn diagram.
//
// A [Layout] carries everything a renderer needs without recomputing any
// geometry: the curves (circle parameters and SVG path data), the zones
// (polygon rings, visual centers, shading) and the label anchors. The
// pipeline caches layouts as JSON and the HTTP API returns them.
//
// # Coordinates
//
// Coordinates are diagram units with y pointing down, as in SVG. MinX,
// MinY, Width and Height bound every curve and label anchor.
//
// # Round trip
//
// [FromDiagram] exports a diagram and [Layout.Diagram] rebuilds one. The
// rebuilt diagram has the same curves, so its zones are recomputed from
// geometry rather than read back from the rings.
package layout
