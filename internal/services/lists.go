package services

import (
	"sort"
	"strings"
)

// mergeLists unions two string lists preserving first-seen order, deduplicating
// case-insensitively. Empty and whitespace-only entries are dropped.
func mergeLists(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	for _, v := range append(append([]string{}, a...), b...) {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// normalizeTechSet deduplicates case-insensitively (first-seen casing wins)
// and sorts case-insensitively. This is the persisted shape of every
// technology set on a canonical project.
func normalizeTechSet(values []string) []string {
	seen := map[string]string{}
	order := []string{}
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		key := strings.ToLower(trimmed)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = trimmed
			order = append(order, key)
		}
	}
	out := make([]string, 0, len(order))
	for _, key := range order {
		out = append(out, seen[key])
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
