package decompose

import (
	"fmt"
	"strings"

	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// Step adds one curve. Drawing Label on top of a diagram of From yields a
// diagram of To; the new curve must pass through every zone in Split.
type Step struct {
	From  euler.Description
	To    euler.Description
	Label euler.Label
	Split []euler.AbstractZone
}

func (s Step) String() string {
	parts := make([]string, len(s.Split))
	for i, z := range s.Split {
		parts[i] = z.String()
	}
	return fmt.Sprintf("%s: %s -> %s via [%s]", s.Label, s.From, s.To, strings.Join(parts, " "))
}

// Steps decomposes d with a default [Decomposer] using strategy. A nil
// strategy selects [ICurves].
func Steps(d euler.Description, strategy Strategy) ([]Step, error) {
	return (&Decomposer{Strategy: strategy}).Steps(d)
}

// Steps removes one label at a time until d is empty and returns the steps
// in removal order. The first step adds the last curve of d.
func (dc *Decomposer) Steps(d euler.Description) ([]Step, error) {
	strategy := dc.strategy()
	var steps []Step
	for cur := d; !cur.IsEmpty(); {
		l, err := strategy.LabelToRemove(cur)
		if err != nil {
			return nil, err
		}
		step := makeStep(cur, l)
		dc.logger().Debug("decomposition step",
			"label", l,
			"from", step.From.Informal(),
			"split", len(step.Split))
		steps = append(steps, step)
		cur = step.From
	}
	return steps, nil
}

// makeStep builds the step that adds l to reach next. The split zones are
// the zones of next without l that l has to pass through or leave behind.
// A single split zone gets a partner so the curve can be drawn as a
// piercing, synthesizing one when the previous description has none.
func makeStep(next euler.Description, l euler.Label) Step {
	prev := next.Without(l)

	var splitZones []euler.AbstractZone
	for _, z := range prev.Zones() {
		if next.Has(z.Add(l)) || !next.Has(z) {
			splitZones = append(splitZones, z)
		}
	}

	if len(splitZones) == 1 && !prev.IsEmpty() {
		az1 := splitZones[0]
		for _, z := range prev.Zones() {
			if z != az1 && z.IsNeighbour(az1) {
				splitZones = append(splitZones, z)
				break
			}
		}
		if len(splitZones) == 1 && az1.Len() > 0 {
			az2 := missingSubzone(az1, prev)
			prev = prev.Extend(az2)
			splitZones = append(splitZones, az2)
		}
	}

	return Step{From: prev, To: next, Label: l, Split: splitZones}
}

// missingSubzone returns the first zone made of all but one label of az, in
// lexicographic order, that d does not have. When d has all of them it
// returns the first.
func missingSubzone(az euler.AbstractZone, d euler.Description) euler.AbstractZone {
	subsets := combinations(az.Labels(), az.Len()-1)
	for _, s := range subsets {
		if z := euler.NewAbstractZone(s...); !d.Has(z) {
			return z
		}
	}
	return euler.NewAbstractZone(subsets[0]...)
}

// combinations returns the k-element subsets of labels in lexicographic
// order of their indices.
func combinations(labels []euler.Label, k int) [][]euler.Label {
	if k < 0 || k > len(labels) {
		return nil
	}
	var out [][]euler.Label
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		c := make([]euler.Label, k)
		for i, j := range idx {
			c[i] = labels[j]
		}
		out = append(out, c)

		i := k - 1
		for i >= 0 && idx[i] == len(labels)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
