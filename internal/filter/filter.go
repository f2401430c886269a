// Package filter parses the query parameters of GET /alumni and narrows a
// record list with them.
package filter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aanand-mishra/alumni-api/internal/types"
)

// AlumniFilter holds the optional list criteria. Zero values match
// everything.
type AlumniFilter struct {
	// Search is a case-insensitive substring looked up in name,
	// university, major and fieldAfterGraduation.
	Search string

	// Exact, case-insensitive matches.
	University string
	Major      string
	Field      string

	// Year is the raw "year" parameter: digits only once validated.
	Year string `validate:"omitempty,number"`

	// Sort is the raw "sort" parameter; empty means the server default.
	// It is checked by sorting.ParseSelector, not here.
	Sort string
}

// ParseAlumniFilter extracts filter parameters from the request URL.
// Values are trimmed but otherwise left raw for validation.
func ParseAlumniFilter(r *http.Request) AlumniFilter {
	q := r.URL.Query()
	return AlumniFilter{
		Search:     strings.TrimSpace(q.Get("q")),
		University: strings.TrimSpace(q.Get("university")),
		Major:      strings.TrimSpace(q.Get("major")),
		Field:      strings.TrimSpace(q.Get("field")),
		Year:       strings.TrimSpace(q.Get("year")),
		Sort:       strings.TrimSpace(q.Get("sort")),
	}
}

// IsEmpty reports whether f matches every record.
func (f AlumniFilter) IsEmpty() bool {
	return f.Search == "" && f.University == "" && f.Major == "" &&
		f.Field == "" && f.Year == ""
}

// Apply returns the records that satisfy f, keeping their order and ids.
// f.Year must already be validated; an unparsable value matches nothing.
func (f AlumniFilter) Apply(records []types.Alumni) []types.Alumni {
	if f.IsEmpty() {
		return records
	}

	search := strings.ToLower(f.Search)
	out := make([]types.Alumni, 0, len(records))
	for _, a := range records {
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if f.University != "" && !strings.EqualFold(a.University, f.University) {
			continue
		}
		if f.Major != "" && !strings.EqualFold(a.Major, f.Major) {
			continue
		}
		if f.Field != "" && !strings.EqualFold(a.FieldAfterGraduation, f.Field) {
			continue
		}
		if f.Year != "" && !matchesYear(a, f.Year) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesSearch checks the lower-cased needle against the searchable text.
func matchesSearch(a types.Alumni, needle string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		a.Name, a.University, a.Major, a.FieldAfterGraduation,
	}, " "))
	return strings.Contains(haystack, needle)
}

func matchesYear(a types.Alumni, year string) bool {
	y, err := strconv.Atoi(year)
	return err == nil && a.YearOfGraduation == y
}
