package cycles

import (
	"context"
	"slices"
)

// Covering finds the shortest simple cycle that visits every vertex in
// targets and returns it. It reports false when no such cycle exists or when
// the search expands more than budget partial paths; a budget of zero or
// less means no limit.
func (g *Graph) Covering(ctx context.Context, targets []int, budget int) ([]int, bool, error) {
	targets = slices.Clone(targets)
	slices.Sort(targets)
	targets = slices.Compact(targets)
	if len(targets) == 0 || len(g.adj) < 3 {
		return nil, false, nil
	}
	for _, t := range targets {
		if t < 0 || t >= len(g.adj) {
			return nil, false, nil
		}
	}

	isTarget := make([]bool, len(g.adj))
	for _, t := range targets {
		isTarget[t] = true
	}
	start := targets[0]
	dist := g.distances(start)
	for _, t := range targets {
		if dist[t] < 0 {
			return nil, false, nil
		}
	}

	s := &search{
		g:      g,
		ctx:    ctx,
		dist:   dist,
		onPath: make([]bool, len(g.adj)),
		limit:  budget,
		accept: func(path []int) bool {
			return countTargets(path, isTarget) == len(targets)
		},
		prune: func(path []int, length int) bool {
			missing := len(targets) - countTargets(path, isTarget)
			return missing > length-len(path)
		},
	}

	var found []int
	stop := func(cycle []int) bool {
		found = cycle
		return false
	}
	for length := max(3, len(targets)); length <= len(g.adj); length++ {
		s.path = append(s.path[:0], start)
		s.onPath[start] = true
		s.walk(length, stop)
		s.onPath[start] = false
		if found != nil {
			return found, true, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		if budget > 0 && s.steps > budget {
			return nil, false, nil
		}
	}
	return nil, false, nil
}

func countTargets(path []int, isTarget []bool) int {
	n := 0
	for _, v := range path {
		if isTarget[v] {
			n++
		}
	}
	return n
}
