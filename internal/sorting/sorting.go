// Package sorting orders alumni records by one of a fixed set of keys.
//
// Every Selector is a (primary, tiebreak) pair:
//
//	ByField      fieldAfterGraduation, then yearOfGraduation
//	ByUniversity university,           then yearOfGraduation
//	ByYear       yearOfGraduation,     then university
//	ByMajor      major,                then yearOfGraduation
//
// Strings compare case-sensitively in byte order, numbers ascending.
// Records equal on both keys keep their input order.
package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aanand-mishra/alumni-api/internal/types"
)

// Selector chooses the comparison used by Sort.
type Selector int

const (
	ByField Selector = iota
	ByUniversity
	ByYear
	ByMajor
)

// DefaultSelector is what GET /alumni uses when no sort is requested.
const DefaultSelector = ByField

// wireNames are the wire names accepted by ParseSelector, indexed by Selector.
var wireNames = [...]string{
	ByField:      "field",
	ByUniversity: "university",
	ByYear:       "year",
	ByMajor:      "major",
}

// comparators holds one comparison per selector.
var comparators = [...]func(a, b types.Alumni) int{
	ByField: func(a, b types.Alumni) int {
		return cmp.Or(
			strings.Compare(a.FieldAfterGraduation, b.FieldAfterGraduation),
			cmp.Compare(a.YearOfGraduation, b.YearOfGraduation),
		)
	},
	ByUniversity: func(a, b types.Alumni) int {
		return cmp.Or(
			strings.Compare(a.University, b.University),
			cmp.Compare(a.YearOfGraduation, b.YearOfGraduation),
		)
	},
	ByYear: func(a, b types.Alumni) int {
		return cmp.Or(
			cmp.Compare(a.YearOfGraduation, b.YearOfGraduation),
			strings.Compare(a.University, b.University),
		)
	},
	ByMajor: func(a, b types.Alumni) int {
		return cmp.Or(
			strings.Compare(a.Major, b.Major),
			cmp.Compare(a.YearOfGraduation, b.YearOfGraduation),
		)
	},
}

// selectors lists every valid selector in declaration order.
func selectors() []Selector {
	return []Selector{ByField, ByUniversity, ByYear, ByMajor}
}

// String returns the wire name of s.
func (s Selector) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Selector(%d)", int(s))
	}
	return wireNames[s]
}

// Valid reports whether s is one of the declared selectors.
func (s Selector) Valid() bool {
	return s >= ByField && s <= ByMajor
}

// ErrUnknownSelector is returned by ParseSelector for a name that is not
// one of the wire names.
var ErrUnknownSelector = errors.New("unknown sort key")

// ParseSelector maps a wire name ("field", "university", "year", "major")
// to its Selector. It is the only place wire names are checked.
func ParseSelector(name string) (Selector, error) {
	for _, s := range selectors() {
		if s.String() == name {
			return s, nil
		}
	}
	return DefaultSelector, fmt.Errorf("%w %q (want one of %s)",
		ErrUnknownSelector, name, strings.Join(wireNames[:], ", "))
}

// Compare returns the three-way comparison of a and b under s.
// An invalid selector falls back to DefaultSelector.
func (s Selector) Compare(a, b types.Alumni) int {
	if !s.Valid() {
		s = DefaultSelector
	}
	return comparators[s](a, b)
}

// Sort returns a new slice holding records ordered by s.
// The input slice is not modified. Empty input gives an empty result.
func Sort(records []types.Alumni, s Selector) []types.Alumni {
	out := make([]types.Alumni, len(records))
	copy(out, records)
	slices.SortStableFunc(out, s.Compare)
	return out
}
