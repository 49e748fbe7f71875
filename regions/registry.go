// Package regions resolves localized region display names over a chain of
// CLDR locales.
//
// Every locale contributes a partial name table on top of its parent. A
// lookup for fr_CA consults fr_CA's own entries first, then fr, then root;
// the most specific locale defining a region code wins. Sort orders and
// likely-region lists are never merged: the nearest locale in the chain
// that declares one supplies it.
//
// A Registry is immutable once built and safe for concurrent use. Flattened
// tables are computed on first use and memoized.
package regions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/minios-linux/regionnames/localeid"
	"github.com/minios-linux/regionnames/merge"
	"github.com/minios-linux/regionnames/resource"
)

// Errors returned by lookups and by New.
var (
	ErrLocaleNotFound  = errors.New("locale not found")
	ErrRegionNotFound  = errors.New("region not found")
	ErrDuplicateLocale = errors.New("duplicate locale")
	ErrUnknownParent   = errors.New("unknown parent locale")
	ErrParentCycle     = errors.New("locale parent cycle")
)

// node is one locale in the inheritance tree.
type node struct {
	id        string
	parent    *node
	names     map[string]string
	sortOrder []string
	likely    []string
}

// chain returns the locales from n up to root, most specific first.
func (n *node) chain() []*node {
	var out []*node
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// Registry holds the locale tree and the memoized flattened tables.
type Registry struct {
	locales map[string]*node
	root    *node
	known   []string

	log     log.FieldLogger
	metrics *metrics

	group  singleflight.Group
	mu     sync.RWMutex
	tables map[string]NameTable
	orders map[string][]string

	missed sync.Map
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger     log.FieldLogger
	registerer prometheus.Registerer
}

// WithLogger sets the logger used to report missing translations.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer registers lookup counters with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New builds a registry from per-locale resources. Resources are expected
// to be validated by the resource package. A missing root resource is
// replaced by an empty root table.
func New(resources []*resource.Resource, opts ...Option) (*Registry, error) {
	o := options{logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		locales: make(map[string]*node, len(resources)+1),
		log:     o.logger,
		metrics: m,
		tables:  make(map[string]NameTable),
		orders:  make(map[string][]string),
	}

	for _, res := range resources {
		id := localeid.Canonicalize(res.Locale)
		if _, dup := r.locales[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLocale, id)
		}
		r.locales[id] = &node{
			id:        id,
			names:     res.Names,
			sortOrder: res.SortOrder,
			likely:    res.Likely,
		}
		r.known = append(r.known, id)
	}
	sort.Strings(r.known)

	root, ok := r.locales[localeid.Root]
	if !ok {
		root = &node{id: localeid.Root, names: map[string]string{}}
		r.locales[localeid.Root] = root
	}
	r.root = root

	for _, res := range resources {
		n := r.locales[localeid.Canonicalize(res.Locale)]
		if n == root {
			continue
		}
		parent, err := r.parentOf(n.id, res.Parent)
		if err != nil {
			return nil, err
		}
		n.parent = parent
	}

	if err := r.checkCycles(); err != nil {
		return nil, err
	}
	return r, nil
}

// parentOf picks the explicit parent when one is declared, otherwise the
// nearest known truncation of id, otherwise root.
func (r *Registry) parentOf(id, explicit string) (*node, error) {
	if explicit != "" {
		p, ok := r.locales[localeid.Canonicalize(explicit)]
		if !ok {
			return nil, fmt.Errorf("%w: %s declares parent %s", ErrUnknownParent, id, explicit)
		}
		return p, nil
	}
	for _, t := range localeid.Truncations(id)[1:] {
		if p, ok := r.locales[t]; ok {
			return p, nil
		}
	}
	return r.root, nil
}

func (r *Registry) checkCycles() error {
	for _, id := range r.known {
		seen := make(map[*node]bool)
		for cur := r.locales[id]; cur != nil; cur = cur.parent {
			if seen[cur] {
				return fmt.Errorf("%w: %s", ErrParentCycle, id)
			}
			seen[cur] = true
		}
	}
	return nil
}

// lookup finds the node that serves locale: the locale itself, or its
// nearest known truncation other than root. Root is served only when
// asked for by name.
func (r *Registry) lookup(locale string) (*node, error) {
	id := localeid.Canonicalize(locale)
	if id == localeid.Root {
		return r.root, nil
	}
	for _, t := range localeid.Truncations(id) {
		if t == localeid.Root {
			break
		}
		if n, ok := r.locales[t]; ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLocaleNotFound, locale)
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// ResolveName returns the display name of region in locale. The locale's
// own table is consulted first, then each ancestor up to root.
func (r *Registry) ResolveName(locale, region string) (string, error) {
	n, err := r.lookup(locale)
	if err != nil {
		r.metrics.lookup(resultLocaleNotFound)
		return "", err
	}

	code := strings.ToUpper(strings.TrimSpace(region))
	for cur := n; cur != nil; cur = cur.parent {
		if name, ok := cur.names[code]; ok {
			r.metrics.lookup(resultHit)
			return name, nil
		}
	}
	r.metrics.lookup(resultRegionNotFound)
	return "", fmt.Errorf("%w: %s in %s", ErrRegionNotFound, region, n.id)
}

// EffectiveNameTable returns the flattened table of locale: root's entries
// overlaid by every descendant down to locale itself.
func (r *Registry) EffectiveNameTable(locale string) (NameTable, error) {
	n, err := r.lookup(locale)
	if err != nil {
		return NameTable{}, err
	}
	return r.table(n), nil
}

func (r *Registry) table(n *node) NameTable {
	r.mu.RLock()
	t, ok := r.tables[n.id]
	r.mu.RUnlock()
	if ok {
		return t
	}

	v, _, _ := r.group.Do("table/"+n.id, func() (any, error) {
		r.mu.RLock()
		t, ok := r.tables[n.id]
		r.mu.RUnlock()
		if ok {
			return t, nil
		}

		chain := n.chain()
		layers := make([]map[string]string, 0, len(chain))
		for i := len(chain) - 1; i >= 0; i-- {
			layers = append(layers, chain[i].names)
		}
		t = NameTable{names: merge.Chain(layers...)}

		r.mu.Lock()
		r.tables[n.id] = t
		r.mu.Unlock()
		return t, nil
	})
	return v.(NameTable)
}

// SortedRegionCodes returns the display order of region codes for locale:
// the locale's own declared order, else the nearest ancestor's, else the
// codes of the effective table ordered by collated display name.
func (r *Registry) SortedRegionCodes(locale string) ([]string, error) {
	n, err := r.lookup(locale)
	if err != nil {
		return nil, err
	}
	for cur := n; cur != nil; cur = cur.parent {
		if len(cur.sortOrder) > 0 {
			return append([]string(nil), cur.sortOrder...), nil
		}
	}
	return append([]string(nil), r.collatedOrder(n)...), nil
}

// LikelyRegionCodes returns the regions where locale's language is most
// likely used, as declared by the nearest locale in the chain. The result
// is empty when no locale declares any.
func (r *Registry) LikelyRegionCodes(locale string) ([]string, error) {
	n, err := r.lookup(locale)
	if err != nil {
		return nil, err
	}
	for cur := n; cur != nil; cur = cur.parent {
		if len(cur.likely) > 0 {
			return append([]string(nil), cur.likely...), nil
		}
	}
	return nil, nil
}

// Chain returns the locale identifiers consulted for locale, most specific
// first and ending with root.
func (r *Registry) Chain(locale string) ([]string, error) {
	n, err := r.lookup(locale)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, cur := range n.chain() {
		ids = append(ids, cur.id)
	}
	return ids, nil
}

// Locales returns the identifiers of all locales with a resource, sorted.
func (r *Registry) Locales() []string {
	return append([]string(nil), r.known...)
}
