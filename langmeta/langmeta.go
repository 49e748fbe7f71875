// Package langmeta derives display metadata for locales and regions
// (native locale names and emoji flags) used by the CLI listings.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/minios-linux/regionnames/localeid"
)

// Meta describes locale display metadata.
type Meta struct {
	Name string
	Flag string
}

// Flag returns the emoji flag for an ISO 3166-1 alpha-2 region code.
// Numeric area codes and the unknown region ZZ have no flag.
func Flag(region string) string {
	r := strings.ToUpper(strings.TrimSpace(region))
	if len(r) != 2 || r == "ZZ" {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 2; i++ {
		c := r[i]
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(rune(0x1F1E6 + int(c-'A')))
	}
	return b.String()
}

// Resolve returns best-effort metadata for a locale identifier. The name
// is the locale's self-name ("français", "日本語"). The flag comes from the
// region subtag when there is one, otherwise from the first of likely.
func Resolve(locale string, likely ...string) Meta {
	id := localeid.Canonicalize(locale)
	if id == localeid.Root {
		return Meta{Name: id}
	}

	tag := localeid.Tag(id)
	m := Meta{Name: id}
	if tag != language.Und {
		if name := display.Self.Name(tag); name != "" {
			m.Name = name
		}
		if region, conf := tag.Region(); conf == language.Exact {
			m.Flag = Flag(region.String())
		}
	}
	if m.Flag == "" && len(likely) > 0 {
		m.Flag = Flag(likely[0])
	}
	return m
}
