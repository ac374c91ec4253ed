package schema

import (
	"sort"
	"strings"
)

// sortedKeys returns the keys of a map in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasLabel reports whether the issue carries the label, ignoring case.
func (i Issue) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// IsRevert reports whether the pull request title marks it as a revert.
func (pr PullRequest) IsRevert() bool {
	return strings.Contains(strings.ToLower(pr.Title), "revert")
}

// FormatContributors joins contributor names, eliding past limit entries.
func FormatContributors(names []string, limit int) string {
	if limit <= 0 || len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:limit], ", ") + ", …"
}

// ParseHydrationKinds parses a comma-separated list of hydration kinds.
// Unknown kinds are returned separately so callers can report them.
func ParseHydrationKinds(s string) (kinds map[HydrationKind]bool, unknown []string) {
	kinds = make(map[HydrationKind]bool)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part == "all" {
			for _, k := range AllHydrationKinds {
				kinds[k] = true
			}
			continue
		}
		if part == "none" {
			continue
		}
		if _, ok := ValidHydrationKinds[HydrationKind(part)]; !ok {
			unknown = append(unknown, part)
			continue
		}
		kinds[HydrationKind(part)] = true
	}
	return kinds, unknown
}
