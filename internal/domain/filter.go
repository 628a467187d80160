package domain

import "strings"

// FilterMode represents a named view over the repository set
type FilterMode string

const (
	FilterAll      FilterMode = "all"
	FilterStarred  FilterMode = "starred"
	FilterArchived FilterMode = "archived"
	FilterRecent   FilterMode = "recent"
)

// FilterModes lists the modes in the order the page shows them
var FilterModes = []FilterMode{FilterAll, FilterStarred, FilterArchived, FilterRecent}

// ParseFilterMode maps user input to a FilterMode. Unknown values fall back to all.
func ParseFilterMode(s string) FilterMode {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case FilterStarred:
		return FilterStarred
	case FilterArchived:
		return FilterArchived
	case FilterRecent:
		return FilterRecent
	default:
		return FilterAll
	}
}

// FilterState holds the user's current search term and filter mode
type FilterState struct {
	SearchTerm string     `json:"search_term"`
	Mode       FilterMode `json:"mode"`
}
