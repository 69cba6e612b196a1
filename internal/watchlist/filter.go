package watchlist

import (
	"fmt"
	"strings"
)

// Filter selects entries by type.
type Filter string

const (
	FilterAll   Filter = "all"
	FilterMovie Filter = "movie"
	FilterTV    Filter = "tv"
)

// ParseFilter accepts all, movie or tv (and the display labels).
func ParseFilter(value string) (Filter, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, string(FilterAll)) {
		return FilterAll, nil
	}
	kind, err := ParseKind(trimmed)
	if err != nil {
		return "", fmt.Errorf("unknown filter %q (want all, movie or tv)", value)
	}
	return Filter(kind.MediaKind()), nil
}

// Match reports whether e passes the filter.
func (f Filter) Match(e Entry) bool {
	switch f {
	case FilterAll, "":
		return true
	default:
		return e.Type == MediaKind(f).Kind()
	}
}
