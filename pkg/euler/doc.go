// Package euler defines the data model of Euler diagrams.
//
// # Abstract Side
//
// A [Label] names one set. An [AbstractZone] is a set of labels and stands
// for one required region: the points inside exactly those curves. The empty
// zone [Outside] is the region outside every curve. A [Description] is a set
// of abstract zones that always contains [Outside]:
//
//	d, err := euler.Parse("a b c ab ac bc abc") // three-set Venn diagram
//
// All abstract values are immutable. Operators such as [AbstractZone.Add],
// [Description.Without] and [Description.Slot] return new values.
//
// # Concrete Side
//
// A [Curve] is a drawn closed boundary for one label, either a [Circle] or a
// free-form [Path]. A [Zone] pairs an abstract zone with the curves of a
// diagram and derives its region: the intersection of the containing curves
// minus the union of the excluding ones. A [Diagram] holds the description the
// user asked for, the description actually drawn, and the curves. Zones in
// the actual description but not in the original one are shaded.
//
// Derived geometry (curve polygons, zone regions, visual centers) is computed
// on first use and cached on the value that owns it.
package euler
