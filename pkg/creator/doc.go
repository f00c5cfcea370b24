// Package creator draws Euler diagrams from descriptions.
//
// A description is first split into atomic components with
// [decompose.Decomposer.Components]. Each component is drawn independently,
// one curve per decomposition step in insertion order:
//
//   - the first curve is a fixed circle;
//   - a step that splits two zones becomes a single piercing circle;
//   - a step that splits four zones becomes a double piercing circle;
//   - otherwise, or when no piercing fits, a cycle of the modified Euler
//     dual (see package dual) gives the new curve.
//
// Components are then folded into one diagram. A component whose parent is
// the outside zone is placed to the right of the diagram so far; any other
// component is scaled into the visual center of its parent zone.
//
// Drawing fails with a coded error from package errors when a curve cannot
// be placed. No partial diagram is returned.
package creator
