package regions

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/minios-linux/regionnames/resource"
)

// fixture is the chain used throughout: root <- fr <- fr_CA, root <- de.
func fixture() []*resource.Resource {
	return []*resource.Resource{
		{
			Locale: "root",
			Names: map[string]string{
				"US": "United States",
				"CA": "Canada",
				"DE": "Germany",
				"ZZ": "Unknown Region",
			},
		},
		{
			Locale:    "fr",
			Names:     map[string]string{"US": "États-Unis", "CA": "Canada", "DE": "Allemagne"},
			SortOrder: []string{"DE", "CA", "US", "ZZ"},
			Likely:    []string{"FR", "CA"},
		},
		{
			Locale: "fr_CA",
			Names:  map[string]string{"ZZ": "région inconnue"},
			Likely: []string{"CA"},
		},
		{
			Locale: "de",
			Names:  map[string]string{"DE": "Deutschland"},
		},
	}
}

func newFixture(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := New(fixture(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestResolveName(t *testing.T) {
	r := newFixture(t)

	cases := []struct {
		locale string
		region string
		want   string
	}{
		{locale: "fr", region: "US", want: "États-Unis"},
		{locale: "de", region: "US", want: "United States"},
		{locale: "de", region: "DE", want: "Deutschland"},
		{locale: "fr_CA", region: "CA", want: "Canada"},
		{locale: "fr_CA", region: "US", want: "États-Unis"},
		{locale: "fr_CA", region: "ZZ", want: "région inconnue"},
		{locale: "fr-ca", region: "us", want: "États-Unis"},
		{locale: "root", region: "US", want: "United States"},
		// fr_BE has no resource; fr serves it.
		{locale: "fr_BE", region: "DE", want: "Allemagne"},
	}

	for _, tc := range cases {
		got, err := r.ResolveName(tc.locale, tc.region)
		if err != nil {
			t.Fatalf("ResolveName(%q, %q) error: %v", tc.locale, tc.region, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveName(%q, %q) = %q, want %q", tc.locale, tc.region, got, tc.want)
		}
	}
}

func TestResolveName_Failures(t *testing.T) {
	r := newFixture(t)

	if _, err := r.ResolveName("xx", "US"); !errors.Is(err, ErrLocaleNotFound) {
		t.Fatalf("unknown locale error = %v, want ErrLocaleNotFound", err)
	}
	if _, err := r.ResolveName("fr", "QQ"); !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("unknown region error = %v, want ErrRegionNotFound", err)
	}
	// No fuzzy matching of region codes.
	if _, err := r.ResolveName("fr", "USA"); !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("USA error = %v, want ErrRegionNotFound", err)
	}
}

func TestEffectiveNameTable(t *testing.T) {
	r := newFixture(t)

	table, err := r.EffectiveNameTable("fr_CA")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"US": "États-Unis",
		"CA": "Canada",
		"DE": "Allemagne",
		"ZZ": "région inconnue",
	}
	if got := table.Map(); !reflect.DeepEqual(got, want) {
		t.Fatalf("EffectiveNameTable(fr_CA) = %#v, want %#v", got, want)
	}

	again, err := r.EffectiveNameTable("fr_CA")
	if err != nil {
		t.Fatal(err)
	}
	if !table.Equal(again) {
		t.Fatal("EffectiveNameTable is not idempotent")
	}

	// Mutating the copy must not leak into the registry.
	m := table.Map()
	m["US"] = "changed"
	if got, _ := r.ResolveName("fr_CA", "US"); got != "États-Unis" {
		t.Fatalf("registry mutated through Map(): %q", got)
	}

	if _, err := r.EffectiveNameTable("xx"); !errors.Is(err, ErrLocaleNotFound) {
		t.Fatalf("EffectiveNameTable(xx) error = %v, want ErrLocaleNotFound", err)
	}
}

func TestSortedRegionCodes(t *testing.T) {
	r := newFixture(t)

	cases := []struct {
		locale string
		want   []string
	}{
		{locale: "fr", want: []string{"DE", "CA", "US", "ZZ"}},
		// Inherited from fr, not merged.
		{locale: "fr_CA", want: []string{"DE", "CA", "US", "ZZ"}},
		// Canada, Deutschland, United States, Unknown Region.
		{locale: "de", want: []string{"CA", "DE", "US", "ZZ"}},
		// Canada, Germany, United States, Unknown Region.
		{locale: "root", want: []string{"CA", "DE", "US", "ZZ"}},
	}

	for _, tc := range cases {
		got, err := r.SortedRegionCodes(tc.locale)
		if err != nil {
			t.Fatalf("SortedRegionCodes(%q) error: %v", tc.locale, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SortedRegionCodes(%q) = %v, want %v", tc.locale, got, tc.want)
		}
	}

	got, _ := r.SortedRegionCodes("fr")
	got[0] = "XX"
	if again, _ := r.SortedRegionCodes("fr"); again[0] != "DE" {
		t.Fatalf("SortedRegionCodes returned shared slice: %v", again)
	}
}

func TestSortedRegionCodes_CollatesAccents(t *testing.T) {
	r, err := New([]*resource.Resource{{
		Locale: "fr",
		Names:  map[string]string{"EG": "Égypte", "ES": "Espagne", "DK": "Danemark"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.SortedRegionCodes("fr")
	if err != nil {
		t.Fatal(err)
	}
	// Byte order would put "Égypte" last.
	if want := []string{"DK", "EG", "ES"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedRegionCodes(fr) = %v, want %v", got, want)
	}
}

func TestLikelyRegionCodes(t *testing.T) {
	r := newFixture(t)

	for locale, want := range map[string][]string{
		"fr":    {"FR", "CA"},
		"fr_CA": {"CA"},
		"de":    nil,
	} {
		got, err := r.LikelyRegionCodes(locale)
		if err != nil {
			t.Fatalf("LikelyRegionCodes(%q) error: %v", locale, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("LikelyRegionCodes(%q) = %v, want %v", locale, got, want)
		}
	}
}

func TestChainAndLocales(t *testing.T) {
	r := newFixture(t)

	chain, err := r.Chain("fr_CA")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"fr_CA", "fr", "root"}; !reflect.DeepEqual(chain, want) {
		t.Fatalf("Chain(fr_CA) = %v, want %v", chain, want)
	}

	if want := []string{"de", "fr", "fr_CA", "root"}; !reflect.DeepEqual(r.Locales(), want) {
		t.Fatalf("Locales() = %v, want %v", r.Locales(), want)
	}
}

func TestNew_ParentResolution(t *testing.T) {
	r, err := New([]*resource.Resource{
		{Locale: "root", Names: map[string]string{"419": "Latin America", "UN": "United Nations"}},
		{Locale: "es", Names: map[string]string{"419": "Latinoamérica"}},
		{Locale: "es_419", Names: map[string]string{"UN": "Naciones Unidas"}},
		{Locale: "es_MX", Parent: "es_419", Names: map[string]string{}},
		// sr is absent, so sr_Latn_RS hangs below root.
		{Locale: "sr_Latn_RS", Names: map[string]string{}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := r.ResolveName("es_MX", "UN"); got != "Naciones Unidas" {
		t.Fatalf("ResolveName(es_MX, UN) = %q, want Naciones Unidas", got)
	}
	if got, _ := r.ResolveName("es_AR", "UN"); got != "United Nations" {
		t.Fatalf("ResolveName(es_AR, UN) = %q, want United Nations", got)
	}
	chain, _ := r.Chain("sr_Latn_RS")
	if want := []string{"sr_Latn_RS", "root"}; !reflect.DeepEqual(chain, want) {
		t.Fatalf("Chain(sr_Latn_RS) = %v, want %v", chain, want)
	}
}

func TestNew_MissingRoot(t *testing.T) {
	r, err := New([]*resource.Resource{{Locale: "fr", Names: map[string]string{"US": "États-Unis"}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ResolveName("fr", "CA"); !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("error = %v, want ErrRegionNotFound", err)
	}
	if table, err := r.EffectiveNameTable("root"); err != nil || table.Len() != 0 {
		t.Fatalf("root table = %v, %v; want empty", table.Map(), err)
	}
	if got := r.Locales(); !reflect.DeepEqual(got, []string{"fr"}) {
		t.Fatalf("Locales() = %v, want [fr]", got)
	}
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name      string
		resources []*resource.Resource
		want      error
	}{
		{
			name: "duplicate locale",
			resources: []*resource.Resource{
				{Locale: "fr"},
				{Locale: "FR"},
			},
			want: ErrDuplicateLocale,
		},
		{
			name: "unknown parent",
			resources: []*resource.Resource{
				{Locale: "es_MX", Parent: "es_419"},
			},
			want: ErrUnknownParent,
		},
		{
			name: "cycle",
			resources: []*resource.Resource{
				{Locale: "aa", Parent: "bb"},
				{Locale: "bb", Parent: "aa"},
			},
			want: ErrParentCycle,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.resources); !errors.Is(err, tc.want) {
				t.Fatalf("New() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestConcurrentFirstAccess(t *testing.T) {
	r := newFixture(t)

	const workers = 16
	tables := make([]NameTable, workers)
	orders := make([][]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i], _ = r.EffectiveNameTable("de")
			orders[i], _ = r.SortedRegionCodes("de")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if !tables[i].Equal(tables[0]) {
			t.Fatalf("worker %d saw a different table", i)
		}
		if !reflect.DeepEqual(orders[i], orders[0]) {
			t.Fatalf("worker %d saw order %v, want %v", i, orders[i], orders[0])
		}
	}
}
