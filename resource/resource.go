// Package resource implements reading and writing of per-locale region name
// resource files.
//
// One file holds the data one locale contributes on top of its parent:
//
//	{
//	    "locale": "fr_CA",
//	    "parent": "fr",
//	    "names": { "CA": "Canada", "US": "États-Unis" },
//	    "sortOrder": ["CA", "US"],
//	    "likely": ["CA"]
//	}
//
// "parent", "sortOrder" and "likely" are optional. The same schema is
// accepted as YAML. When "locale" is omitted it is taken from the file name
// (fr_CA.json, fr_CA.yaml).
package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/regionnames/localeid"
)

// Errors returned while parsing or validating resources.
var (
	ErrInvalidResource   = errors.New("invalid locale resource")
	ErrInvalidRegionCode = errors.New("invalid region code")
	ErrDuplicateRegion   = errors.New("region code defined more than once")
	ErrUnknownFormat     = errors.New("unknown resource format")
)

// Format identifies the serialization of a resource file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a format name ("json", "yaml" or "yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Set implements pflag.Value.
func (f *Format) Set(name string) error {
	parsed, err := ParseFormat(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Resource is the contribution of a single locale.
type Resource struct {
	Locale    string            `json:"locale" yaml:"locale"`
	Parent    string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Names     map[string]string `json:"names" yaml:"names"`
	SortOrder []string          `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
	Likely    []string          `json:"likely,omitempty" yaml:"likely,omitempty"`
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a resource file. The format is chosen by
// extension and a missing "locale" field is taken from the file stem.
func ParseFile(path string) (*Resource, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseNamed(data, format, path)
}

// Parse parses and validates a resource document. The document must name
// its locale.
func Parse(data []byte, format Format) (*Resource, error) {
	r, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := r.normalize(); err != nil {
		return nil, err
	}
	return r, nil
}

// parseNamed parses a document read from path, defaulting the locale to the
// file stem.
func parseNamed(data []byte, format Format, path string) (*Resource, error) {
	r, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(r.Locale) == "" {
		r.Locale = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := r.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func decode(data []byte, format Format) (*Resource, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

func parseJSON(data []byte) (*Resource, error) {
	var raw struct {
		Locale    string          `json:"locale"`
		Parent    string          `json:"parent"`
		Names     json.RawMessage `json:"names"`
		SortOrder []string        `json:"sortOrder"`
		Likely    []string        `json:"likely"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %v", ErrInvalidResource, err)
	}

	r := &Resource{
		Locale:    raw.Locale,
		Parent:    raw.Parent,
		SortOrder: raw.SortOrder,
		Likely:    raw.Likely,
		Names:     make(map[string]string),
	}
	if len(raw.Names) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Names), []byte("null")) {
		names, err := parseUniqueStringMap(raw.Names)
		if err != nil {
			return nil, err
		}
		r.Names = names
	}
	return r, nil
}

// parseUniqueStringMap decodes a JSON object of string values, rejecting
// keys that appear more than once. encoding/json silently keeps the last
// duplicate, so the object is walked token by token.
func parseUniqueStringMap(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing names: %v", ErrInvalidResource, err)
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: names: expected {, got %v", ErrInvalidResource, t)
	}

	values := make(map[string]string)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: parsing names: %v", ErrInvalidResource, err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("%w: names: expected string key, got %T", ErrInvalidResource, kt)
		}

		vt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: parsing names: %v", ErrInvalidResource, err)
		}
		value, ok := vt.(string)
		if !ok {
			return nil, fmt.Errorf("%w: names: expected string value for %q, got %T", ErrInvalidResource, key, vt)
		}

		code := strings.ToUpper(key)
		if _, dup := values[code]; dup {
			return nil, fmt.Errorf("%w: names: %q", ErrDuplicateRegion, key)
		}
		values[code] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: parsing names: %v", ErrInvalidResource, err)
	}
	return values, nil
}

func parseYAML(data []byte) (*Resource, error) {
	var r Resource
	// yaml.v3 rejects duplicate mapping keys on its own.
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %v", ErrInvalidResource, err)
	}
	if r.Names == nil {
		r.Names = make(map[string]string)
	}
	return &r, nil
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// normalize canonicalizes identifiers in place and validates the resource.
func (r *Resource) normalize() error {
	if strings.TrimSpace(r.Locale) == "" {
		return fmt.Errorf("%w: missing locale", ErrInvalidResource)
	}
	if !localeid.Valid(r.Locale) {
		return fmt.Errorf("%w: bad locale identifier %q", ErrInvalidResource, r.Locale)
	}
	r.Locale = localeid.Canonicalize(r.Locale)

	if r.Parent != "" {
		if !localeid.Valid(r.Parent) {
			return fmt.Errorf("%w: %s: bad parent identifier %q", ErrInvalidResource, r.Locale, r.Parent)
		}
		r.Parent = localeid.Canonicalize(r.Parent)
		if r.Parent == r.Locale {
			return fmt.Errorf("%w: %s: locale is its own parent", ErrInvalidResource, r.Locale)
		}
	}

	names := make(map[string]string, len(r.Names))
	for code, name := range r.Names {
		canon, err := CanonicalRegion(code)
		if err != nil {
			return fmt.Errorf("%s: names: %w", r.Locale, err)
		}
		if _, dup := names[canon]; dup {
			return fmt.Errorf("%w: %s: names: %q", ErrDuplicateRegion, r.Locale, code)
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: %s: empty name for %s", ErrInvalidResource, r.Locale, canon)
		}
		names[canon] = norm.NFC.String(name)
	}
	r.Names = names

	var err error
	if r.SortOrder, err = canonicalList(r.SortOrder); err != nil {
		return fmt.Errorf("%s: sortOrder: %w", r.Locale, err)
	}
	if r.Likely, err = canonicalList(r.Likely); err != nil {
		return fmt.Errorf("%s: likely: %w", r.Locale, err)
	}
	return nil
}

func canonicalList(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		canon, err := CanonicalRegion(code)
		if err != nil {
			return nil, err
		}
		if seen[canon] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRegion, code)
		}
		seen[canon] = true
		out = append(out, canon)
	}
	return out, nil
}

// CanonicalRegion upper-cases a region code and checks its shape: two ASCII
// letters (ISO 3166-1 alpha-2) or three ASCII digits (UN M.49).
func CanonicalRegion(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch len(c) {
	case 2:
		if isUpper(c[0]) && isUpper(c[1]) {
			return c, nil
		}
	case 3:
		if isDigit(c[0]) && isDigit(c[1]) && isDigit(c[2]) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRegionCode, code)
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serializes the resource. Name keys are written in sorted order
// by both encoders.
func (r *Resource) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", r.Locale, err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", r.Locale, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", r.Locale, err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// WriteFile serializes the resource in the format implied by path.
func (r *Resource) WriteFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := r.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
