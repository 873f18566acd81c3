package question

import (
	"slices"
	"strings"
)

// Filter is an AND-composed set of predicates narrowing a question scan.
// The zero value matches every question.
type Filter struct {
	category      *int
	excluded      map[int]struct{}
	terms         []string
	unsatisfiable bool
}

// ByCategory matches questions whose category reference equals id.
func ByCategory(id int) Filter {
	return Filter{category: &id}
}

// Excluding matches questions whose id is not in ids.
func Excluding(ids []int) Filter {
	f := Filter{}
	if len(ids) == 0 {
		return f
	}
	f.excluded = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		f.excluded[id] = struct{}{}
	}
	return f
}

// BySubstring matches questions whose text contains term, ignoring case.
// Blank terms are rejected rather than treated as match-all.
func BySubstring(term string) (Filter, error) {
	if strings.TrimSpace(term) == "" {
		return Filter{}, invalid("searchTerm", "must not be empty")
	}
	return Filter{terms: []string{term}}, nil
}

// And returns the conjunction of f and other.
func (f Filter) And(other Filter) Filter {
	out := Filter{unsatisfiable: f.unsatisfiable || other.unsatisfiable}

	switch {
	case f.category != nil && other.category != nil:
		if *f.category != *other.category {
			out.unsatisfiable = true
		}
		out.category = f.category
	case f.category != nil:
		out.category = f.category
	default:
		out.category = other.category
	}

	if len(f.excluded)+len(other.excluded) > 0 {
		out.excluded = make(map[int]struct{}, len(f.excluded)+len(other.excluded))
		for id := range f.excluded {
			out.excluded[id] = struct{}{}
		}
		for id := range other.excluded {
			out.excluded[id] = struct{}{}
		}
	}

	out.terms = append(append(out.terms, f.terms...), other.terms...)
	return out
}

// Matches evaluates the filter against a single question.
func (f Filter) Matches(q Question) bool {
	if f.unsatisfiable {
		return false
	}
	if f.category != nil && q.Category != *f.category {
		return false
	}
	if _, skip := f.excluded[q.ID]; skip {
		return false
	}
	if len(f.terms) > 0 {
		text := strings.ToLower(q.Question)
		for _, term := range f.terms {
			if !strings.Contains(text, strings.ToLower(term)) {
				return false
			}
		}
	}
	return true
}

// Category returns the category constraint, if any.
func (f Filter) Category() (int, bool) {
	if f.category == nil {
		return 0, false
	}
	return *f.category, true
}

// ExcludedIDs returns the excluded ids in ascending order.
func (f Filter) ExcludedIDs() []int {
	if len(f.excluded) == 0 {
		return nil
	}
	ids := make([]int, 0, len(f.excluded))
	for id := range f.excluded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Terms returns the substring constraints.
func (f Filter) Terms() []string {
	return slices.Clone(f.terms)
}

// Unsatisfiable reports whether no question can match (conflicting categories).
func (f Filter) Unsatisfiable() bool {
	return f.unsatisfiable
}
