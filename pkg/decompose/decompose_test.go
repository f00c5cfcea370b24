package decompose

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

func TestIsAtomic(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a", true},
		{"ab", false},
		{"a b", false},
		{"a b ab", true},
		{"a ab abc", true},
		{"a ab c", false},
		{"a b ab c d cd", false},
		{"a b c ab ac bc abc", true},
	}

	if !IsAtomic(euler.Empty) {
		t.Error("IsAtomic(Empty) = false, want true")
	}
	for _, tt := range tests {
		if got := IsAtomic(euler.MustParse(tt.in)); got != tt.want {
			t.Errorf("IsAtomic(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// reassemble nests every component back into the first at its parent zone.
func reassemble(t *testing.T, parts []euler.Description) euler.Description {
	t.Helper()
	acc := parts[0]
	for _, p := range parts[1:] {
		var err error
		if acc, err = acc.Plus(p); err != nil {
			t.Fatalf("Plus(%v) error = %v", p, err)
		}
	}
	return acc
}

func TestComponents(t *testing.T) {
	// Descriptions with several valid splits may decompose into a varying
	// number of parts, so minParts is a lower bound for those.
	tests := []struct {
		name     string
		in       string
		minParts int
		exact    bool
	}{
		{"connected", "a ab abc", 1, true},
		{"venn3", "a b c ab ac bc abc", 1, true},
		{"disjoint pairs", "a b ab c d cd", 2, true},
		{"three disjoint", "a b c", 3, true},
		{"nested or disjoint", "a ab c", 2, false},
		{"several splits", "a ab abc d", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := euler.MustParse(tt.in)
			parts, err := Components(context.Background(), d)
			if err != nil {
				t.Fatalf("Components() error = %v", err)
			}
			if len(parts) < tt.minParts || (tt.exact && len(parts) != tt.minParts) {
				t.Fatalf("len(Components()) = %d, want %d: %v", len(parts), tt.minParts, parts)
			}

			var labels []euler.Label
			for _, p := range parts {
				if !IsAtomic(p) {
					t.Errorf("component %q is not atomic", p.Informal())
				}
				labels = append(labels, p.Labels()...)
			}
			slices.Sort(labels)
			if !slices.Equal(labels, d.Labels()) {
				t.Errorf("component labels = %v, want %v", labels, d.Labels())
			}

			if got := reassemble(t, parts); !got.Equal(d) {
				t.Errorf("reassembled = %q, want %q", got.Informal(), d.Informal())
			}
		})
	}
}

func TestComponentsDisjointOrder(t *testing.T) {
	parts, err := Components(context.Background(), euler.MustParse("a b ab c d cd"))
	if err != nil {
		t.Fatalf("Components() error = %v", err)
	}
	want := []string{"a b ab", "c d cd"}
	for i, p := range parts {
		if p.Informal() != want[i] {
			t.Errorf("parts[%d] = %q, want %q", i, p.Informal(), want[i])
		}
		if !p.Parent().IsOutside() {
			t.Errorf("parts[%d].Parent() = %v, want outside", i, p.Parent())
		}
	}
}

func TestComponentsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Components(ctx, euler.MustParse("a b ab c d cd")); err == nil {
		t.Error("Components() error = nil, want context error")
	}
}

func TestCombinations(t *testing.T) {
	got := combinations([]euler.Label{"a", "b", "c"}, 2)
	want := [][]euler.Label{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if len(got) != len(want) {
		t.Fatalf("combinations() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("combinations()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := combinations([]euler.Label{"a"}, 0); len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("combinations(k=0) = %v, want [[]]", got)
	}
	if got := combinations([]euler.Label{"a"}, 2); got != nil {
		t.Errorf("combinations(k>n) = %v, want nil", got)
	}
}

func TestMakeStep(t *testing.T) {
	tests := []struct {
		name      string
		next      string
		label     euler.Label
		wantFrom  string
		wantSplit []string
	}{
		{"venn2", "a b ab", "b", "a", []string{"", "a"}},
		{"first curve", "a", "a", "", []string{""}},
		{"venn3", "a b c ab ac bc abc", "c", "a b ab", []string{"", "a", "b", "ab"}},
		{"neighbour partner", "a ab abc", "c", "a ab", []string{"ab", "a"}},
		{"synthesized partner", "ab abc", "c", "a ab", []string{"ab", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := makeStep(euler.MustParse(tt.next), tt.label)
			if got := step.From.Informal(); got != tt.wantFrom {
				t.Errorf("From = %q, want %q", got, tt.wantFrom)
			}
			var split []string
			for _, z := range step.Split {
				split = append(split, z.Key())
			}
			if !slices.Equal(split, tt.wantSplit) {
				t.Errorf("Split = %q, want %q", split, tt.wantSplit)
			}
			if step.Label != tt.label || !step.To.Equal(euler.MustParse(tt.next)) {
				t.Errorf("step = %v, want label %s to %q", step, tt.label, tt.next)
			}
		})
	}
}

func TestSteps(t *testing.T) {
	steps, err := Steps(euler.MustParse("a b c ab ac bc abc"), nil)
	if err != nil {
		t.Fatalf("Steps() error = %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("len(Steps()) = %d, want 3", len(steps))
	}
	if steps[0].Label != "c" || len(steps[0].Split) != 4 {
		t.Errorf("steps[0] = %v, want c splitting 4 zones", steps[0])
	}
	for i := 1; i < len(steps); i++ {
		if !steps[i].To.Equal(steps[i-1].From) {
			t.Errorf("steps[%d].To = %v, want %v", i, steps[i].To, steps[i-1].From)
		}
	}
	if last := steps[len(steps)-1]; !last.From.IsEmpty() {
		t.Errorf("last step starts from %v, want ∅", last.From)
	}
}

func TestStepsStrategyError(t *testing.T) {
	failing := StrategyFunc(func(d euler.Description) (euler.Label, error) {
		return "", errors.Invariant("no label")
	})
	if _, err := Steps(euler.MustParse("a b ab"), failing); !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("Steps() error = %v, want %s", err, errors.ErrCodeInvariant)
	}
}

func TestIsDrawableAsCircle(t *testing.T) {
	tests := []struct {
		name  string
		d     string
		label euler.Label
		want  bool
	}{
		{"single piercing", "a b ab", "b", true},
		{"double piercing from 2", "a b ab ac bc", "c", true},
		{"double piercing from 4", "a b c ab ac bc abc", "c", true},
		{"one zone", "a b", "a", false},
		{"disjoint zones", "a b ac bd", "c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDrawableAsCircle(tt.label, euler.MustParse(tt.d)); got != tt.want {
				t.Errorf("isDrawableAsCircle(%s, %q) = %v, want %v", tt.label, tt.d, got, tt.want)
			}
		})
	}
}

func TestDoublePiercingShapes(t *testing.T) {
	z := euler.MustZone

	if !canBeDoublePiercingFrom3([]euler.AbstractZone{z("a"), z("ab"), z("abc")}) {
		t.Error("canBeDoublePiercingFrom3(a ab abc) = false, want true")
	}
	if canBeDoublePiercingFrom3([]euler.AbstractZone{z("a"), z("bc"), z("abcd")}) {
		t.Error("canBeDoublePiercingFrom3(a bc abcd) = true, want false")
	}
	if !canBeDoublePiercingFrom4([]euler.AbstractZone{z("c"), z("ac"), z("bc"), z("abc")}) {
		t.Error("canBeDoublePiercingFrom4(c ac bc abc) = false, want true")
	}
	if canBeDoublePiercingFrom4([]euler.AbstractZone{z("a"), z("b"), z("c"), z("abc")}) {
		t.Error("canBeDoublePiercingFrom4(a b c abc) = true, want false")
	}
}

func TestLowerBoundExtraZones(t *testing.T) {
	tests := []struct {
		d     string
		label euler.Label
		want  int
	}{
		{"a b ab", "a", -2},
		{"a b c ab ac bc abc", "a", 4},
		{"ab", "a", 1 - 1},
	}

	for _, tt := range tests {
		if got := lowerBoundExtraZones(tt.label, euler.MustParse(tt.d)); got != tt.want {
			t.Errorf("lowerBoundExtraZones(%s, %q) = %d, want %d", tt.label, tt.d, got, tt.want)
		}
	}
}
