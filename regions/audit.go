package regions

import (
	"fmt"
	"sort"

	"github.com/minios-linux/regionnames/merge"
)

// Severity grades an audit finding.
type Severity int

const (
	// SeverityWarning marks data that works but is probably unintended.
	SeverityWarning Severity = iota
	// SeverityError marks data that breaks a lookup guarantee.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// ProblemKind classifies an audit finding.
type ProblemKind string

const (
	// ProblemUnresolvedSortCode: a code of the sort order has no name.
	ProblemUnresolvedSortCode ProblemKind = "unresolved-sort-code"
	// ProblemUnresolvedLikelyCode: a likely region has no name.
	ProblemUnresolvedLikelyCode ProblemKind = "unresolved-likely-code"
	// ProblemIncompleteSortOrder: a named code is absent from the sort order.
	ProblemIncompleteSortOrder ProblemKind = "incomplete-sort-order"
	// ProblemRedundantName: an own name repeats the inherited one.
	ProblemRedundantName ProblemKind = "redundant-name"
)

// Problem is one audit finding.
type Problem struct {
	Locale   string
	Region   string
	Kind     ProblemKind
	Severity Severity
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s %s (%s)", p.Locale, p.Kind, p.Region, p.Severity)
}

// Audit checks every locale for inconsistencies between its name table and
// its sort order and likely regions. Findings are sorted by locale, kind and
// region.
func (r *Registry) Audit() []Problem {
	var problems []Problem

	for _, id := range r.known {
		n := r.locales[id]
		table := r.table(n)

		order, _ := r.SortedRegionCodes(id)
		inOrder := make(map[string]bool, len(order))
		for _, code := range order {
			inOrder[code] = true
			if _, ok := table.Get(code); !ok {
				problems = append(problems, Problem{id, code, ProblemUnresolvedSortCode, SeverityError})
			}
		}
		for _, code := range table.Codes() {
			if !inOrder[code] {
				problems = append(problems, Problem{id, code, ProblemIncompleteSortOrder, SeverityWarning})
			}
		}

		likely, _ := r.LikelyRegionCodes(id)
		for _, code := range likely {
			if _, ok := table.Get(code); !ok {
				problems = append(problems, Problem{id, code, ProblemUnresolvedLikelyCode, SeverityError})
			}
		}

		if n.parent != nil {
			for _, code := range merge.Redundant(r.table(n.parent).names, n.names) {
				problems = append(problems, Problem{id, code, ProblemRedundantName, SeverityWarning})
			}
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		a, b := problems[i], problems[j]
		if a.Locale != b.Locale {
			return a.Locale < b.Locale
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Region < b.Region
	})
	return problems
}

// Errors returns the findings of severity SeverityError.
func Errors(problems []Problem) []Problem {
	var out []Problem
	for _, p := range problems {
		if p.Severity == SeverityError {
			out = append(out, p)
		}
	}
	return out
}
