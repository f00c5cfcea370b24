package creator

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// OutsideMargin separates components placed side by side.
const OutsideMargin = 4000.0

// embed draws in into acc at the parent zone of its description. scores
// counts the diagrams embedded into each zone so far; crowded zones get
// smaller diagrams.
func (c *Creator) embed(acc, in *euler.Diagram, scores map[euler.AbstractZone]int) (*euler.Diagram, error) {
	az := in.Original().Parent()

	var moved *euler.Diagram
	if az.IsOutside() {
		moved = in.Translate(curve.Vec(acc.Bounds().MaxX()+OutsideMargin, 0))
	} else {
		zone, err := acc.Zone(az)
		if err != nil {
			return nil, err
		}
		center := zone.VisualCenter()
		clearance := zone.ShortestDistanceToOtherZone(center)

		b := in.Bounds()
		size := math.Max(b.Width(), b.Height())
		if size == 0 {
			return nil, errors.Invariant("cannot embed zero-sized diagram %s into %s", in, az)
		}

		scores[az]++
		crowding := math.Max(math.Sqrt(float64(scores[az]))*0.5, 0.75)
		ratio := clearance / size / crowding

		from := in.Center()
		moved = in.Scale(ratio, from).Translate(center.Sub(from))
		c.logger.Debug("embedding", "zone", az, "scale", ratio, "at", center)
	}

	original, err := acc.Original().Plus(in.Original())
	if err != nil {
		return nil, err
	}
	actual, err := acc.Actual().Plus(in.Actual())
	if err != nil {
		return nil, err
	}
	return euler.NewDiagram(original, actual, append(acc.Curves(), moved.Curves()...))
}
