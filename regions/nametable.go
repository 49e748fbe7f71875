package regions

import "sort"

// NameTable is an immutable mapping from region code to display name.
// The zero value is an empty table.
type NameTable struct {
	names map[string]string
}

// Get returns the display name for code.
func (t NameTable) Get(code string) (string, bool) {
	name, ok := t.names[code]
	return name, ok
}

// Len returns the number of region codes in the table.
func (t NameTable) Len() int { return len(t.names) }

// Codes returns the region codes of the table in byte order.
func (t NameTable) Codes() []string {
	codes := make([]string, 0, len(t.names))
	for code := range t.names {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Map returns a copy of the table contents.
func (t NameTable) Map() map[string]string {
	m := make(map[string]string, len(t.names))
	for k, v := range t.names {
		m[k] = v
	}
	return m
}

// Equal reports whether both tables hold the same entries.
func (t NameTable) Equal(other NameTable) bool {
	if len(t.names) != len(other.names) {
		return false
	}
	for k, v := range t.names {
		if ov, ok := other.names[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
