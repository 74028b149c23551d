package matcher

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FormatMatch summarizes the match and captures of r, e.g.
// `"01-01" $1="01" $2=- day="01"`. Unmatched results give "".
func FormatMatch(r Result) string {
	if !r.Matched || r.Match == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("%q", *r.Match)}
	for i, g := range r.Groups {
		parts = append(parts, fmt.Sprintf("$%d=%s", i+1, quoteGroup(g)))
	}
	for _, name := range slices.Sorted(maps.Keys(r.NamedGroups)) {
		parts = append(parts, fmt.Sprintf("%s=%s", name, quoteGroup(r.NamedGroups[name])))
	}
	return strings.Join(parts, " ")
}

func quoteGroup(g *string) string {
	if g == nil {
		return "-"
	}
	return fmt.Sprintf("%q", *g)
}
