// Package decompose breaks an Euler description into pieces that can be
// drawn one curve at a time.
//
// # Components
//
// [Components] splits a description into atomic components: descriptions
// whose zones form a single connected neighbour graph. A component that sits
// inside a zone of another records that zone as its parent, so the pieces
// can be drawn separately and nested back together:
//
//	parts, err := decompose.Components(ctx, euler.MustParse("a b ab c d cd"))
//	// parts: "a b ab" and "c d cd", both with the outside zone as parent
//
// The search for a split runs the candidate label partitions concurrently
// and stops at the first one that reconstructs the input. When more than one
// split exists, which one wins is not specified.
//
// # Steps
//
// [Steps] peels labels off an atomic description until nothing is left and
// returns the steps in removal order. Replaying them backwards adds one curve
// per step. Each [Step] names the zones its curve must split.
//
// The order in which labels are removed comes from a [Strategy]. [ICurves]
// prefers labels that can be drawn as circles piercing existing curves and
// otherwise the label with the fewest expected extra zones, never removing a
// label whose removal disconnects the description.
package decompose
