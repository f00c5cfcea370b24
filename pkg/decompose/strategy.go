package decompose

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/matzehuels/eulerdraw/pkg/cycles"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// Strategy chooses the next label to remove from a description.
type Strategy interface {
	LabelToRemove(d euler.Description) (euler.Label, error)
}

// StrategyFunc adapts a function to [Strategy].
type StrategyFunc func(d euler.Description) (euler.Label, error)

// LabelToRemove calls f(d).
func (f StrategyFunc) LabelToRemove(d euler.Description) (euler.Label, error) { return f(d) }

// ICurves is the default strategy. It only removes labels whose removal
// leaves the description atomic. Among those it first tries labels with few
// zones that can be drawn as single or double piercings, starting from the
// label with the fewest zones, and otherwise the label with the smallest
// lower bound on extra zones.
var ICurves Strategy = StrategyFunc(icurves)

const (
	// maxCycleLabels caps the hypercube searched for the extra-zone bound.
	maxCycleLabels = 12
	// cycleBudget caps the partial paths explored per bound.
	cycleBudget = 200_000
)

func icurves(d euler.Description) (euler.Label, error) {
	labels := d.Labels()

	byZones := slices.Clone(labels)
	slices.Reverse(byZones)
	slices.SortStableFunc(byZones, func(a, b euler.Label) int {
		return cmp.Compare(d.ZoneCount(a), d.ZoneCount(b))
	})
	for _, l := range byZones {
		if isDrawableAsCircle(l, d) && isNonDisconnecting(l, d) {
			return l, nil
		}
	}

	bounds := make(map[euler.Label]int, len(labels))
	for _, l := range labels {
		bounds[l] = lowerBoundExtraZones(l, d)
	}
	byBound := slices.Clone(labels)
	slices.SortStableFunc(byBound, func(a, b euler.Label) int {
		return cmp.Compare(bounds[a], bounds[b])
	})
	for _, l := range byBound {
		if isNonDisconnecting(l, d) {
			return l, nil
		}
	}

	return "", errors.Invariant("no non-disconnecting label in %q", d.Informal())
}

func isNonDisconnecting(l euler.Label, d euler.Description) bool {
	return IsAtomic(d.Without(l))
}

func isDrawableAsCircle(l euler.Label, d euler.Description) bool {
	switch zones := d.ZonesWith(l); len(zones) {
	case 2:
		return zones[0].IsNeighbour(zones[1]) || canBeDoublePiercingFrom2(zones, d)
	case 3:
		return canBeDoublePiercingFrom3(zones)
	case 4:
		return canBeDoublePiercingFrom4(zones)
	default:
		return false
	}
}

// canBeDoublePiercingFrom2 reports whether two zones of a label can become
// the four zones of a double piercing by adding the two missing corners of
// a square in the zone lattice.
func canBeDoublePiercingFrom2(zones []euler.AbstractZone, d euler.Description) bool {
	z0, z1 := zones[0], zones[1]
	pairs := combinations(d.Labels(), 2)

	switch diff := z0.Len() - z1.Len(); diff {
	case 0:
		for _, p := range pairs {
			l1, l2 := p[0], p[1]
			if az3 := z0.Add(l1); !d.Has(az3) {
				if az3.Remove(l2) != z1 {
					continue
				}
				if az4 := z1.Remove(l1); !d.Has(az4) && az4.Add(l2) == z0 {
					return true
				}
			} else if az3 := z0.Remove(l1); !d.Has(az3) {
				if az3.Add(l2) != z1 {
					continue
				}
				if az4 := z1.Add(l1); !d.Has(az4) && az4.Remove(l2) == z0 {
					return true
				}
			}
		}
	case 2, -2:
		smallest, biggest := z0, z1
		if diff > 0 {
			smallest, biggest = z1, z0
		}
		for _, p := range pairs {
			l1, l2 := p[0], p[1]
			if az3 := smallest.Add(l1); !d.Has(az3) {
				if az3.Add(l2) != biggest {
					continue
				}
				if az4 := biggest.Remove(l1); !d.Has(az4) && az4.Remove(l2) == smallest {
					return true
				}
			} else if az3 := smallest.Add(l2); !d.Has(az3) {
				if az3.Add(l1) != biggest {
					continue
				}
				if az4 := biggest.Remove(l2); !d.Has(az4) && az4.Remove(l1) == smallest {
					return true
				}
			}
		}
	}
	return false
}

// canBeDoublePiercingFrom3 reports whether three zones form a path in the
// neighbour relation whose ends can be joined through a fourth zone.
func canBeDoublePiercingFrom3(zones []euler.AbstractZone) bool {
	az1, az2, az3 := zones[0], zones[1], zones[2]

	closes := func(a, b, c euler.AbstractZone) bool {
		d1, ok1 := a.StraddledLabel(b)
		_, ok2 := b.StraddledLabel(c)
		if !ok1 || !ok2 {
			return false
		}
		return a.IsNeighbour(c.Add(d1)) || a.IsNeighbour(c.Remove(d1))
	}

	return closes(az1, az2, az3) || closes(az1, az3, az2) || closes(az3, az1, az2)
}

// canBeDoublePiercingFrom4 reports whether four zones form a cycle in the
// neighbour relation, walking greedily from the first zone.
func canBeDoublePiercingFrom4(zones []euler.AbstractZone) bool {
	rest := slices.Clone(zones[1:])
	az1 := zones[0]

	i := slices.IndexFunc(rest, az1.IsNeighbour)
	if i < 0 {
		return false
	}
	az2 := rest[i]
	rest = slices.Delete(rest, i, i+1)

	j := slices.IndexFunc(rest, az2.IsNeighbour)
	if j < 0 {
		return false
	}
	rest = slices.Delete(rest, j, j+1)

	return az1.IsNeighbour(rest[0])
}

// lowerBoundExtraZones estimates how many zones drawing l would add beyond
// those in d: the zones of l with no counterpart outside l, plus the length
// of the shortest cycle through the zones l must split in the lattice of all
// zones over the other labels. When no such cycle is found the second term
// is minus the number of split zones.
func lowerBoundExtraZones(l euler.Label, d euler.Description) int {
	n := 0
	for _, z := range d.ZonesWith(l) {
		if !d.Has(z.Remove(l)) {
			n++
		}
	}

	set := make(map[euler.AbstractZone]struct{})
	for _, z := range d.Without(l).Zones() {
		if d.Has(z.Add(l)) {
			set[z] = struct{}{}
		}
	}
	in := maps.Keys(set)
	slices.SortFunc(in, euler.AbstractZone.Compare)

	return n + smallestCycleSize(in, l, d)
}

// smallestCycleSize returns the number of zones on the shortest cycle of the
// zone lattice over the labels of d other than l that passes through every
// zone in targets, or -len(targets) when there is none.
func smallestCycleSize(targets []euler.AbstractZone, l euler.Label, d euler.Description) int {
	others := slices.DeleteFunc(d.Labels(), func(o euler.Label) bool { return o == l })
	if len(others) < 2 || len(others) > maxCycleLabels {
		return -len(targets)
	}

	bit := make(map[euler.Label]int, len(others))
	for i, o := range others {
		bit[o] = 1 << i
	}
	mask := func(z euler.AbstractZone) int {
		m := 0
		for _, o := range z.Labels() {
			m |= bit[o]
		}
		return m
	}

	g := cycles.New(1 << len(others))
	for u := range g.Len() {
		for i := range others {
			if v := u | 1<<i; v != u {
				g.AddEdge(u, v)
			}
		}
	}

	vs := make([]int, len(targets))
	for i, z := range targets {
		vs[i] = mask(z)
	}
	c, ok, err := g.Covering(context.Background(), vs, cycleBudget)
	if err != nil || !ok {
		return -len(targets)
	}
	return len(c)
}
