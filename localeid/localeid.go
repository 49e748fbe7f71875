// Package localeid normalizes CLDR-style locale identifiers ("fr_CA",
// "sr_Latn", "shi_Tfng") and derives their truncation chains.
//
// Identifiers use underscores as separators. Input with hyphens or odd
// casing is accepted and normalized:
//
//	fr-ca    -> fr_CA
//	SR_latn  -> sr_Latn
//	und, ""  -> root
package localeid

import (
	"strings"

	"golang.org/x/text/language"
)

// Root is the identifier of the locale at the top of every chain.
const Root = "root"

// Canonicalize normalizes the separator and case of a locale identifier.
// The language subtag is lower-cased, a four-letter script is title-cased,
// a two-letter or three-digit region is upper-cased. Other subtags are
// upper-cased as CLDR does for variants.
func Canonicalize(id string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(id), "-", "_")
	if normalized == "" || strings.EqualFold(normalized, Root) || strings.EqualFold(normalized, "und") {
		return Root
	}

	parts := strings.Split(normalized, "_")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		p := parts[i]
		if i == 1 && len(p) == 4 && isAlpha(p) {
			parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
			continue
		}
		parts[i] = strings.ToUpper(p)
	}
	return strings.Join(parts, "_")
}

// IsRoot reports whether id names the root locale.
func IsRoot(id string) bool {
	return Canonicalize(id) == Root
}

// Valid reports whether id is syntactically a locale identifier: a 2-8
// letter language subtag followed by alphanumeric subtags of 1-8 chars.
func Valid(id string) bool {
	c := Canonicalize(id)
	if c == Root {
		return true
	}
	parts := strings.Split(c, "_")
	if len(parts[0]) < 2 || len(parts[0]) > 8 || !isAlpha(parts[0]) {
		return false
	}
	for _, p := range parts[1:] {
		if p == "" || len(p) > 8 || !isAlnum(p) {
			return false
		}
	}
	return true
}

// Parent returns the truncation parent of id: the identifier with its last
// subtag removed, or Root for a bare language. The parent of Root is "".
func Parent(id string) string {
	c := Canonicalize(id)
	if c == Root {
		return ""
	}
	if idx := strings.LastIndexByte(c, '_'); idx >= 0 {
		return c[:idx]
	}
	return Root
}

// Truncations returns id followed by every truncation parent, ending with
// Root. Truncations("sr_Latn_RS") = [sr_Latn_RS sr_Latn sr root].
func Truncations(id string) []string {
	var chain []string
	for c := Canonicalize(id); c != ""; c = Parent(c) {
		chain = append(chain, c)
	}
	return chain
}

// Tag converts id to a BCP 47 tag for use with golang.org/x/text. Root and
// identifiers the language package cannot parse map to language.Und.
func Tag(id string) language.Tag {
	c := Canonicalize(id)
	if c == Root {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(c, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
