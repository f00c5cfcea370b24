package euler

import (
	"slices"
	"strings"

	"github.com/matzehuels/eulerdraw/pkg/errors"
)

// Description is an immutable set of abstract zones that always contains
// [Outside]. Parent records the zone of an enclosing description that this
// one is embedded into; it does not take part in equality.
//
// The zero value is equivalent to [Empty].
type Description struct {
	zones  []AbstractZone // sorted by Compare, zones[0] is Outside
	set    map[AbstractZone]struct{}
	parent AbstractZone
}

// Empty is the description with only the outside zone.
var Empty = NewDescription()

// NewDescription returns the description of the given zones plus [Outside].
func NewDescription(zones ...AbstractZone) Description {
	set := make(map[AbstractZone]struct{}, len(zones)+1)
	set[Outside] = struct{}{}
	for _, z := range zones {
		set[z] = struct{}{}
	}

	sorted := make([]AbstractZone, 0, len(set))
	for z := range set {
		sorted = append(sorted, z)
	}
	slices.SortFunc(sorted, AbstractZone.Compare)

	return Description{zones: sorted, set: set}
}

// Parse parses the informal form of a description: whitespace separated
// zone tokens, each a run of single-character labels. The outside zone is
// implicit.
func Parse(s string) (Description, error) {
	if err := errors.ValidateDescription(s); err != nil {
		return Empty, err
	}

	fields := strings.Fields(s)
	zones := make([]AbstractZone, 0, len(fields))
	for _, f := range fields {
		z, err := ParseZone(f)
		if err != nil {
			return Empty, err
		}
		zones = append(zones, z)
	}
	return NewDescription(zones...), nil
}

// MustParse is like [Parse] but panics on malformed input.
func MustParse(s string) Description {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Parent returns the zone this description is embedded into.
func (d Description) Parent() AbstractZone { return d.parent }

// WithParent returns d with its parent set to p.
func (d Description) WithParent(p AbstractZone) Description {
	d.parent = p
	return d
}

// Zones returns all zones of d, outside first, in zone order.
func (d Description) Zones() []AbstractZone {
	if len(d.zones) == 0 {
		return []AbstractZone{Outside}
	}
	return slices.Clone(d.zones)
}

// Inside returns the zones of d other than [Outside], in zone order.
func (d Description) Inside() []AbstractZone {
	if len(d.zones) <= 1 {
		return nil
	}
	return slices.Clone(d.zones[1:])
}

// Len returns the number of zones of d, counting [Outside].
func (d Description) Len() int { return max(len(d.zones), 1) }

// Has reports whether z is a zone of d.
func (d Description) Has(z AbstractZone) bool {
	if z.IsOutside() {
		return true
	}
	_, ok := d.set[z]
	return ok
}

// IsEmpty reports whether d has no zone besides [Outside].
func (d Description) IsEmpty() bool { return len(d.zones) <= 1 }

// Labels returns the labels used by the zones of d in ascending order.
func (d Description) Labels() []Label {
	var rs []rune
	for _, z := range d.zones {
		rs = append(rs, []rune(z.key)...)
	}
	return zoneFromRunes(rs).Labels()
}

// ZoneCount returns the number of zones of d that contain l.
func (d Description) ZoneCount(l Label) int {
	n := 0
	for _, z := range d.zones {
		if z.Contains(l) {
			n++
		}
	}
	return n
}

// ZonesWith returns the zones of d that contain l, in zone order.
func (d Description) ZonesWith(l Label) []AbstractZone {
	var out []AbstractZone
	for _, z := range d.zones {
		if z.Contains(l) {
			out = append(out, z)
		}
	}
	return out
}

// Equal reports whether d and o have the same zones.
func (d Description) Equal(o Description) bool {
	return slices.Equal(d.Zones(), o.Zones())
}

// Without returns d with l removed from every zone.
func (d Description) Without(l Label) Description {
	zones := make([]AbstractZone, 0, len(d.zones))
	for _, z := range d.zones {
		zones = append(zones, z.Remove(l))
	}
	return NewDescription(zones...).WithParent(d.parent)
}

// Extend returns d with the given zones added.
func (d Description) Extend(zones ...AbstractZone) Description {
	return NewDescription(append(d.Zones(), zones...)...).WithParent(d.parent)
}

// Slot embeds g into zone az of d: the result holds the zones of d plus
// every zone of g joined with az. It fails when az is not a zone of d.
func (d Description) Slot(az AbstractZone, g Description) (Description, error) {
	if !d.Has(az) {
		return Empty, errors.Invariant("cannot slot into %s: not a zone of %q", az, d.Informal())
	}
	zones := d.Zones()
	for _, z := range g.Zones() {
		zones = append(zones, z.Union(az))
	}
	return NewDescription(zones...).WithParent(d.parent), nil
}

// Plus embeds g into d at the parent zone of g.
func (d Description) Plus(g Description) (Description, error) {
	return d.Slot(g.parent, g)
}

// Informal returns the zones of d other than [Outside] joined by spaces.
func (d Description) Informal() string {
	inside := d.Inside()
	parts := make([]string, len(inside))
	for i, z := range inside {
		parts[i] = z.key
	}
	return strings.Join(parts, " ")
}

// String returns the informal form of d, with "∅" for [Empty].
func (d Description) String() string {
	if d.IsEmpty() {
		return "∅"
	}
	return d.Informal()
}
