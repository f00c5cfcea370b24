package decompose

import (
	"cmp"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// DefaultStrategy names [ICurves].
const DefaultStrategy = "icurves"

// FewestZones removes the non-disconnecting label that occurs in the fewest
// zones, ties going to the later label. It skips the piercing analysis of
// [ICurves] and so tends to need more dual cycles.
var FewestZones Strategy = StrategyFunc(fewestZones)

func fewestZones(d euler.Description) (euler.Label, error) {
	labels := d.Labels()
	slices.Reverse(labels)
	slices.SortStableFunc(labels, func(a, b euler.Label) int {
		return cmp.Compare(d.ZoneCount(a), d.ZoneCount(b))
	})
	for _, l := range labels {
		if isNonDisconnecting(l, d) {
			return l, nil
		}
	}
	return "", errors.Invariant("no non-disconnecting label in %q", d.Informal())
}

var strategies = map[string]Strategy{
	DefaultStrategy: ICurves,
	"fewest-zones":  FewestZones,
}

// StrategyByName returns a registered strategy. The empty name means
// [DefaultStrategy].
func StrategyByName(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	s, ok := strategies[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown strategy %q (must be one of: %v)", name, StrategyNames())
	}
	return s, nil
}

// StrategyNames returns the registered strategy names in sorted order.
func StrategyNames() []string {
	names := maps.Keys(strategies)
	slices.Sort(names)
	return names
}
