package decompose

import (
	"context"
	stderrors "errors"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// Decomposer runs component and label decomposition.
//
// The zero value is usable: it uses [ICurves] and discards log output.
type Decomposer struct {
	Strategy Strategy
	Logger   *log.Logger
}

// New returns a decomposer with the given strategy and logger. Nil values
// select the defaults.
func New(strategy Strategy, logger *log.Logger) *Decomposer {
	return &Decomposer{Strategy: strategy, Logger: logger}
}

func (dc *Decomposer) logger() *log.Logger {
	if dc.Logger == nil {
		return log.New(io.Discard)
	}
	return dc.Logger
}

func (dc *Decomposer) strategy() Strategy {
	if dc.Strategy == nil {
		return ICurves
	}
	return dc.Strategy
}

// Components decomposes d with a default [Decomposer].
func Components(ctx context.Context, d euler.Description) ([]euler.Description, error) {
	return (&Decomposer{}).Components(ctx, d)
}

// IsAtomic reports whether d cannot be split into nested or disjoint parts:
// it is empty, has at most one label, or its non-outside zones form a
// connected graph under the neighbour relation. A single zone with more than
// one label, such as "ab", is not atomic.
func IsAtomic(d euler.Description) bool {
	if d.IsEmpty() || len(d.Labels()) <= 1 {
		return true
	}
	inside := d.Inside()
	if len(inside) == 1 {
		return false
	}
	return connected(inside)
}

func connected(zones []euler.AbstractZone) bool {
	if len(zones) == 0 {
		return true
	}
	seen := make([]bool, len(zones))
	seen[0] = true
	stack := []int{0}
	count := 1
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for j, z := range zones {
			if !seen[j] && zones[i].IsNeighbour(z) {
				seen[j] = true
				count++
				stack = append(stack, j)
			}
		}
	}
	return count == len(zones)
}

// Components returns the atomic components of d in drawing order: a host
// always comes before the components nested in its zones. Each component
// carries the zone it belongs in as its parent.
//
// A non-atomic description that no split can reconstruct is returned as a
// single component.
func (dc *Decomposer) Components(ctx context.Context, d euler.Description) ([]euler.Description, error) {
	if IsAtomic(d) {
		return []euler.Description{d}, nil
	}

	s, ok, err := dc.findSplit(ctx, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		dc.logger().Debug("no split for non-atomic description", "description", d.Informal())
		return []euler.Description{d}, nil
	}

	host := s.host.WithParent(d.Parent())
	guest := s.guest.WithParent(d.Parent().Union(s.zone))
	dc.logger().Debug("split description",
		"description", d.Informal(),
		"host", host.Informal(),
		"zone", s.zone,
		"guest", guest.Informal())

	hostParts, err := dc.Components(ctx, host)
	if err != nil {
		return nil, err
	}
	guestParts, err := dc.Components(ctx, guest)
	if err != nil {
		return nil, err
	}
	return append(hostParts, guestParts...), nil
}

type split struct {
	host  euler.Description
	zone  euler.AbstractZone
	guest euler.Description
}

var errSplitFound = stderrors.New("split found")

// findSplit tries every unordered two-way partition of the labels of d
// concurrently and returns the first one that reconstructs d.
func (dc *Decomposer) findSplit(ctx context.Context, d euler.Description) (split, bool, error) {
	labels := d.Labels()
	n := len(labels)
	if n < 2 || n > 30 {
		return split{}, false, nil
	}

	var (
		once  sync.Once
		found split
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	// Masks with the last label unset enumerate each partition once: the
	// masked labels form one side and the rest, always holding the last
	// label, the other.
	for mask := uint32(1); mask < 1<<(n-1); mask++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			left, right := partition(labels, mask)
			if s, ok := trySplit(d, left, right); ok {
				once.Do(func() { found = s })
				return errSplitFound
			}
			return nil
		})
	}

	err := g.Wait()
	switch {
	case stderrors.Is(err, errSplitFound):
		return found, true, nil
	case err != nil:
		return split{}, false, err
	case ctx.Err() != nil:
		return split{}, false, ctx.Err()
	}
	return split{}, false, nil
}

func partition(labels []euler.Label, mask uint32) (left, right []euler.Label) {
	for i, l := range labels {
		if mask&(1<<i) != 0 {
			left = append(left, l)
		} else {
			right = append(right, l)
		}
	}
	return left, right
}

// trySplit checks whether d is one side of the partition slotted into a
// zone of the other.
func trySplit(d euler.Description, left, right []euler.Label) (split, bool) {
	d1 := project(d, right)
	d2 := project(d, left)

	for _, az := range d1.Zones() {
		if sum, err := d1.Slot(az, d2); err == nil && sum.Equal(d) {
			return split{host: d1, zone: az, guest: d2}, true
		}
	}
	for _, az := range d2.Zones() {
		if sum, err := d2.Slot(az, d1); err == nil && sum.Equal(d) {
			return split{host: d2, zone: az, guest: d1}, true
		}
	}
	return split{}, false
}

// project removes the given labels from every zone of d.
func project(d euler.Description, drop []euler.Label) euler.Description {
	zones := d.Zones()
	for i, z := range zones {
		zones[i] = z.RemoveAll(drop)
	}
	return euler.NewDescription(zones...)
}
