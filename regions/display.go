package regions

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/minios-linux/regionnames/resource"
)

// DisplayName returns the display name of region in locale, or region
// itself when no name is known. Each distinct miss is logged once.
func (r *Registry) DisplayName(locale, region string) string {
	name, err := r.ResolveName(locale, region)
	if err == nil {
		return name
	}
	r.reportMiss(locale, region, err)
	return region
}

// reportMiss logs the first occurrence of a failed lookup.
func (r *Registry) reportMiss(locale, region string, err error) {
	key := locale + "\x00" + region
	if _, seen := r.missed.LoadOrStore(key, struct{}{}); seen {
		return
	}
	r.log.WithFields(log.Fields{
		"locale": locale,
		"region": region,
	}).WithError(err).Warn("no display name, using region code")
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	resources, err := resource.Embedded()
	if err != nil {
		return nil, err
	}
	return New(resources)
})

// Default returns the registry built from the embedded CLDR tables. It is
// built on first use.
func Default() (*Registry, error) {
	return loadDefault()
}

// GetDisplayName resolves a display name against the default registry,
// falling back to the region code.
func GetDisplayName(locale, region string) string {
	r, err := Default()
	if err != nil {
		log.WithError(err).Error("loading embedded region names")
		return region
	}
	return r.DisplayName(locale, region)
}

// GetSortedRegionCodes returns the region display order of locale from the
// default registry. Unknown locales yield nil.
func GetSortedRegionCodes(locale string) []string {
	r, err := Default()
	if err != nil {
		log.WithError(err).Error("loading embedded region names")
		return nil
	}
	codes, err := r.SortedRegionCodes(locale)
	if err != nil {
		r.reportMiss(locale, "", err)
		return nil
	}
	return codes
}

// ListKnownLocales returns the locales of the default registry.
func ListKnownLocales() []string {
	r, err := Default()
	if err != nil {
		log.WithError(err).Error("loading embedded region names")
		return nil
	}
	return r.Locales()
}
