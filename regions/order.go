package regions

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/minios-linux/regionnames/localeid"
)

// collatedOrder orders the codes of n's effective table by display name
// under the collation rules of n's language. Equal names fall back to code
// order so the result is stable.
func (r *Registry) collatedOrder(n *node) []string {
	r.mu.RLock()
	order, ok := r.orders[n.id]
	r.mu.RUnlock()
	if ok {
		return order
	}

	v, _, _ := r.group.Do("order/"+n.id, func() (any, error) {
		r.mu.RLock()
		order, ok := r.orders[n.id]
		r.mu.RUnlock()
		if ok {
			return order, nil
		}

		table := r.table(n)
		order = sortByName(table, collate.New(localeid.Tag(n.id)))

		r.mu.Lock()
		r.orders[n.id] = order
		r.mu.Unlock()
		return order, nil
	})
	return v.([]string)
}

func sortByName(t NameTable, c *collate.Collator) []string {
	codes := t.Codes()
	sort.SliceStable(codes, func(i, j int) bool {
		if d := c.CompareString(t.names[codes[i]], t.names[codes[j]]); d != 0 {
			return d < 0
		}
		return codes[i] < codes[j]
	})
	return codes
}
