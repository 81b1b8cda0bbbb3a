// Package analyzer inspects a GTM container for unused variables, duplicate
// variables and unused custom templates. Every function in the package is pure:
// it reads the container it is given and keeps no state between calls.
package analyzer

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

var referencePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// ExtractReferences returns the set of variable names referenced as {{Name}}
// anywhere inside value. Strings are scanned, slices and map values are walked,
// map keys and every other kind are ignored.
func ExtractReferences(value any) map[string]struct{} {
	refs := make(map[string]struct{})
	collectReferences(value, refs)
	return refs
}

func collectReferences(value any, refs map[string]struct{}) {
	switch v := value.(type) {
	case string:
		for _, match := range referencePattern.FindAllStringSubmatch(v, -1) {
			refs[match[1]] = struct{}{}
		}
	case []any:
		for _, item := range v {
			collectReferences(item, refs)
		}
	case map[string]any:
		for _, item := range v {
			collectReferences(item, refs)
		}
	}
}

// CountReferences counts the literal {{name}} occurrences inside value.
func CountReferences(value any, name string) int {
	token := "{{" + name + "}}"
	switch v := value.(type) {
	case string:
		return strings.Count(v, token)
	case []any:
		count := 0
		for _, item := range v {
			count += CountReferences(item, name)
		}
		return count
	case map[string]any:
		count := 0
		for _, item := range v {
			count += CountReferences(item, name)
		}
		return count
	default:
		return 0
	}
}

func sortedNames[V any](set map[string]V) []string {
	names := maps.Keys(set)
	slices.Sort(names)
	if names == nil {
		return []string{}
	}
	return names
}
