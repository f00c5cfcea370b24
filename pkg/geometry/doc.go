// Package geometry implements the planar geometry behind Euler diagram
// construction.
//
// # Overview
//
// Every curve and zone of a diagram is ultimately a [Region]: an area bounded
// by one or more rings, where nested rings act as holes. Regions support the
// boolean algebra that zone construction needs ([Region.Intersection],
// [Region.Difference], [Region.Union]) together with point queries such as
// [Region.Contains] and [Region.SignedDistance].
//
// Boolean operations are delegated to github.com/ctessum/geom. Points, vectors,
// rectangles and Bézier paths come from honnef.co/go/curve so that the same
// values flow unchanged into rendering.
//
// # Visual Centers
//
// [VisualCenter] finds the pole of inaccessibility of a region: the interior
// point farthest from any boundary ring. It uses cell subdivision with a
// priority queue ordered by each cell's upper bound, so zones with holes are
// handled by measuring against all rings at once.
//
// # Circle Piercing
//
// [Pierce] looks for a circle whose boundary passes through a point shared by
// the boundaries of a set of target regions while staying clear of all other
// regions. It backs single (two target) and double (four target) piercings.
//
// # Routing
//
// [Router] computes polylines between two points that never leave a given
// region, using A* over a grid clipped to the region.
package geometry
