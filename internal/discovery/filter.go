package discovery

import (
	"path/filepath"
	"strings"

	"ctr/internal/suite"
)

// Filter selects suites by name
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the suites whose name matches pattern.
// Supports patterns like "add_*" or "*appeal*"; without wildcards
// a substring match is used.
func (f *Filter) FilterByName(suites []suite.Definition, pattern string) []suite.Definition {
	if pattern == "" {
		return suites
	}

	var filtered []suite.Definition
	for _, def := range suites {
		if Match(def.Name, pattern) {
			filtered = append(filtered, def)
		}
	}
	return filtered
}

// FilterByNames keeps the suites named exactly in names, in the order of
// suites. Unknown names are returned separately.
func (f *Filter) FilterByNames(suites []suite.Definition, names []string) ([]suite.Definition, []string) {
	if len(names) == 0 {
		return suites, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var filtered []suite.Definition
	for _, def := range suites {
		if wanted[def.Name] {
			filtered = append(filtered, def)
			delete(wanted, def.Name)
		}
	}

	var unknown []string
	for _, n := range names {
		if wanted[n] {
			unknown = append(unknown, n)
		}
	}
	return filtered, unknown
}

// Match reports whether name matches pattern
func Match(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// "*appeal*" style: every literal part must appear in the name
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") || !strings.Contains(name, part) {
			return false
		}
		hasPart = true
	}
	return hasPart
}
