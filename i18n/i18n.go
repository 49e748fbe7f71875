// Package i18n localizes the regionnames CLI's own messages.
//
// Translations are gettext PO catalogs embedded under
// locales/{lang}/LC_MESSAGES/regionnames.po and read through gotext.
// Init picks the most specific catalog available for the requested
// language ("ru_RU" uses "ru" when only that exists).
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/minios-linux/regionnames/localeid"
)

//go:embed all:locales
var locales embed.FS

const domain = "regionnames"

var (
	po     *gotext.Locale
	active string
)

// Init loads the catalog for lang. An empty lang is detected from
// LANGUAGE, LC_ALL, LC_MESSAGES, LANG in GNU gettext order. Without a
// matching catalog messages pass through untranslated.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	active = catalogFor(lang)
	if active == "" {
		po = nil
		return
	}
	po = gotext.NewLocaleFSWithPath(active, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// Lang returns the catalog selected by Init, or "" when messages are
// untranslated.
func Lang() string {
	return active
}

// Available lists the embedded catalogs.
func Available() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	return langs
}

// T translates a string, returning msgid when no translation exists.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a string with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// catalogFor walks the truncation chain of lang and returns the first
// identifier with an embedded catalog.
func catalogFor(lang string) string {
	for _, id := range localeid.Truncations(lang) {
		if id == localeid.Root {
			break
		}
		name := path.Join("locales", id, "LC_MESSAGES", domain+".po")
		if _, err := fs.Stat(locales, name); err == nil {
			return id
		}
	}
	return ""
}

func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// ru_RU.UTF-8@euro -> ru_RU
		if idx := strings.IndexAny(val, ".@"); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
