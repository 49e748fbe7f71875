package langmeta

import "testing"

func TestFlag(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "FR", want: "\U0001F1EB\U0001F1F7"},
		{in: " ca ", want: "\U0001F1E8\U0001F1E6"},
		{in: "419", want: ""},
		{in: "ZZ", want: ""},
		{in: "", want: ""},
		{in: "U1", want: ""},
	}

	for _, tc := range cases {
		got := Flag(tc.in)
		if got != tc.want {
			t.Fatalf("Flag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("self name", func(t *testing.T) {
		got := Resolve("de")
		if got.Name != "Deutsch" || got.Flag != "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("region subtag flag", func(t *testing.T) {
		got := Resolve("fr-ca")
		if got.Flag != Flag("CA") || got.Name == "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("likely region flag", func(t *testing.T) {
		got := Resolve("ja", "JP")
		if got.Name != "日本語" || got.Flag != Flag("JP") {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("region subtag wins over likely", func(t *testing.T) {
		got := Resolve("es_MX", "ES")
		if got.Flag != Flag("MX") {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("root", func(t *testing.T) {
		got := Resolve("")
		if got.Name != "root" || got.Flag != "" {
			t.Fatalf("unexpected root result: %#v", got)
		}
	})
}
