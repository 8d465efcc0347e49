package models

import (
	"slices"
	"strings"
)

// SelectedFilter is the category selection a profile last applied to a list page.
type SelectedFilter struct {
	Categories []string `json:"categories"`
}

// Normalize trims, drops empty entries, de-duplicates and sorts the categories.
func (f SelectedFilter) Normalize() SelectedFilter {
	out := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	slices.Sort(out)
	return SelectedFilter{Categories: slices.Compact(out)}
}
