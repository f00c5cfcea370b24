// Package dual builds the modified Euler dual (MED) of a drawn diagram and
// searches it for cycles along which a new curve can be drawn.
//
// # Graph
//
// The MED has one vertex per non-empty zone, placed at the zone's visual
// center, and an edge between every pair of topologically adjacent zones.
// Edges are straight when the segment crosses only the curve separating the
// two zones; otherwise they are routed through the two zones. The outside
// zone is represented by a ring of sixteen vertices around the diagram. Each
// zone touching the outside is joined to its nearest ring vertex.
//
// # Cycles
//
// [MED.ComputeCycle] walks simple cycles shortest first and returns the
// first one that visits every requested zone and bounds a simple polygon
// with no other MED vertex inside. The polygon becomes the new curve.
//
// # Output
//
// [DOT] writes the MED as Graphviz source with pinned vertex positions and
// [RenderSVG] renders it.
package dual
