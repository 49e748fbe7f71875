// Package merge implements the overlay of locale name tables: a more
// specific locale's entries replace a less specific locale's entries for the
// same region code, and codes the specific locale does not define are
// inherited unchanged.
package merge

import "sort"

// Overlay returns a new map holding every entry of base, with entries of own
// replacing base entries that share a key. Neither input is modified.
func Overlay(base, own map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(own))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range own {
		result[k] = v
	}
	return result
}

// Chain overlays tables in order, least specific first. Chain(root, fr, frCA)
// equals Overlay(Overlay(root, fr), frCA).
func Chain(tables ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, t := range tables {
		for k, v := range t {
			result[k] = v
		}
	}
	return result
}

// Redundant returns the keys of own, sorted, whose value is identical to
// the value base already holds for that key.
func Redundant(base, own map[string]string) []string {
	var keys []string
	for k, v := range own {
		if bv, ok := base[k]; ok && bv == v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
