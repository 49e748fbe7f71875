package localeid

import (
	"reflect"
	"testing"

	"golang.org/x/text/language"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "fr_CA", want: "fr_CA"},
		{in: "fr-ca", want: "fr_CA"},
		{in: " FR_ca ", want: "fr_CA"},
		{in: "sr_latn", want: "sr_Latn"},
		{in: "shi-TFNG", want: "shi_Tfng"},
		{in: "es_419", want: "es_419"},
		{in: "en_us_posix", want: "en_US_POSIX"},
		{in: "und", want: Root},
		{in: "ROOT", want: Root},
		{in: "", want: Root},
	}

	for _, tc := range cases {
		if got := Canonicalize(tc.in); got != tc.want {
			t.Fatalf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "fr_CA", want: "fr"},
		{in: "sr_Latn_RS", want: "sr_Latn"},
		{in: "fr", want: Root},
		{in: Root, want: ""},
	}

	for _, tc := range cases {
		if got := Parent(tc.in); got != tc.want {
			t.Fatalf("Parent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncations(t *testing.T) {
	want := []string{"sr_Latn_RS", "sr_Latn", "sr", Root}
	if got := Truncations("sr-latn-rs"); !reflect.DeepEqual(got, want) {
		t.Fatalf("Truncations() = %#v, want %#v", got, want)
	}

	if got := Truncations(""); !reflect.DeepEqual(got, []string{Root}) {
		t.Fatalf("Truncations(\"\") = %#v, want [root]", got)
	}
}

func TestValid(t *testing.T) {
	valid := []string{"en", "fr_CA", "shi_Tfng", "es_419", "root", "gsw"}
	for _, id := range valid {
		if !Valid(id) {
			t.Errorf("Valid(%q) = false, want true", id)
		}
	}

	invalid := []string{"e", "fr__CA", "fr_CA!", "1a", "toolonglanguage"}
	for _, id := range invalid {
		if Valid(id) {
			t.Errorf("Valid(%q) = true, want false", id)
		}
	}
}

func TestTag(t *testing.T) {
	if got := Tag("fr_CA"); got != language.MustParse("fr-CA") {
		t.Fatalf("Tag(fr_CA) = %v, want fr-CA", got)
	}
	if got := Tag(Root); got != language.Und {
		t.Fatalf("Tag(root) = %v, want und", got)
	}
	if !IsRoot("und") || IsRoot("en") {
		t.Fatal("IsRoot misclassified und/en")
	}
}
