package euler

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/eulerdraw/pkg/errors"
)

// Label identifies one set of a diagram. It is a single character.
type Label string

// ParseLabel validates s as a single-character label.
func ParseLabel(s string) (Label, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return "", errors.New(errors.ErrCodeInvalidInput, "label %q must be a single character", s)
	}
	if err := errors.ValidateLabel(r); err != nil {
		return "", err
	}
	return Label(s), nil
}

// AbstractZone is an immutable set of labels. The zero value is [Outside].
//
// Zones are comparable with == and usable as map keys.
type AbstractZone struct {
	key string // sorted label runes
}

// Outside is the zone outside every curve.
var Outside = AbstractZone{}

func zoneFromRunes(rs []rune) AbstractZone {
	slices.Sort(rs)
	rs = slices.Compact(rs)
	return AbstractZone{key: string(rs)}
}

// NewAbstractZone returns the zone containing the given labels.
func NewAbstractZone(labels ...Label) AbstractZone {
	rs := make([]rune, 0, len(labels))
	for _, l := range labels {
		rs = append(rs, []rune(string(l))...)
	}
	return zoneFromRunes(rs)
}

// ParseZone parses a zone token such as "abc", where every character is one
// label.
func ParseZone(token string) (AbstractZone, error) {
	if err := errors.ValidateZoneToken(token); err != nil {
		return Outside, err
	}
	return zoneFromRunes([]rune(token)), nil
}

// MustZone is like [ParseZone] but panics on malformed tokens.
func MustZone(token string) AbstractZone {
	z, err := ParseZone(token)
	if err != nil {
		panic(err)
	}
	return z
}

// Labels returns the labels of z in ascending order.
func (z AbstractZone) Labels() []Label {
	labels := make([]Label, 0, len(z.key))
	for _, r := range z.key {
		labels = append(labels, Label(string(r)))
	}
	return labels
}

// Len returns the number of labels in z.
func (z AbstractZone) Len() int { return utf8.RuneCountInString(z.key) }

// IsOutside reports whether z is the outside zone.
func (z AbstractZone) IsOutside() bool { return z.key == "" }

// Contains reports whether l is one of the labels of z.
func (z AbstractZone) Contains(l Label) bool {
	return l != "" && strings.Contains(z.key, string(l))
}

// Add returns z with l added.
func (z AbstractZone) Add(l Label) AbstractZone {
	if z.Contains(l) {
		return z
	}
	return zoneFromRunes([]rune(z.key + string(l)))
}

// Remove returns z without l. Removing a label that is not in z returns z.
func (z AbstractZone) Remove(l Label) AbstractZone {
	if !z.Contains(l) {
		return z
	}
	return AbstractZone{key: strings.Replace(z.key, string(l), "", 1)}
}

// Union returns the zone with the labels of both z and o.
func (z AbstractZone) Union(o AbstractZone) AbstractZone {
	if o.IsOutside() {
		return z
	}
	return zoneFromRunes([]rune(z.key + o.key))
}

// Minus returns z without any label of o.
func (z AbstractZone) Minus(o AbstractZone) AbstractZone {
	rs := make([]rune, 0, len(z.key))
	for _, r := range z.key {
		if !strings.ContainsRune(o.key, r) {
			rs = append(rs, r)
		}
	}
	return AbstractZone{key: string(rs)}
}

// RemoveAll returns z without any of the given labels.
func (z AbstractZone) RemoveAll(labels []Label) AbstractZone {
	return z.Minus(NewAbstractZone(labels...))
}

// Compare orders zones with fewer labels first and breaks ties by comparing
// the sorted label sequences.
func (z AbstractZone) Compare(o AbstractZone) int {
	if n, m := z.Len(), o.Len(); n != m {
		if n < m {
			return -1
		}
		return 1
	}
	return strings.Compare(z.key, o.key)
}

// StraddledLabel returns the single label by which z and o differ. It
// reports false unless z and o are neighbours.
func (z AbstractZone) StraddledLabel(o AbstractZone) (Label, bool) {
	n, m := z.Len(), o.Len()
	if n-m != 1 && m-n != 1 {
		return "", false
	}
	small, big := z, o
	if n > m {
		small, big = o, z
	}
	diff := big.Minus(small)
	if diff.Len() != 1 || small.Minus(big).Len() != 0 {
		return "", false
	}
	return Label(diff.key), true
}

// IsNeighbour reports whether z and o differ by exactly one label.
func (z AbstractZone) IsNeighbour(o AbstractZone) bool {
	_, ok := z.StraddledLabel(o)
	return ok
}

// Key returns the informal form of z, which is empty for [Outside].
func (z AbstractZone) Key() string { return z.key }

// String returns the informal form of z, with "∅" for the outside zone.
func (z AbstractZone) String() string {
	if z.IsOutside() {
		return "∅"
	}
	return z.key
}
