package catalog

import (
	"slices"
	"sort"
	"strings"

	"fornex/internal/domain"
)

// Filter is the set of catalog predicates selected by the visitor.
// Empty fields leave the corresponding predicate inactive.
type Filter struct {
	Regions    []string
	Categories []string
	Product    string
	Query      string
}

// IsEmpty reports whether no predicate is active.
func (f Filter) IsEmpty() bool {
	return len(activeTokens(f.Regions)) == 0 &&
		len(activeTokens(f.Categories)) == 0 &&
		f.Product == "" &&
		f.Query == ""
}

// FilterAndOrder returns the companies matching every active predicate of f,
// premium plans first. The input slice is never modified and the relative
// order of companies with the same plan rank is preserved.
func FilterAndOrder(companies []domain.Company, f Filter) []domain.Company {
	out := make([]domain.Company, 0, len(companies))
	if f.IsEmpty() {
		out = append(out, companies...)
	} else {
		m := newMatcher(f)
		for _, c := range companies {
			if m.match(c) {
				out = append(out, c)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Plan.IsPremium() && !out[j].Plan.IsPremium()
	})
	return out
}

// DeriveCategories flattens the categories of every company, drops
// duplicates (case-sensitive) and blanks, and sorts the rest ascending.
func DeriveCategories(companies []domain.Company) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range companies {
		for _, cat := range c.Categories {
			if strings.TrimSpace(cat) == "" {
				continue
			}
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}
	slices.Sort(out)
	return out
}

// matcher holds the lowercased form of a Filter so that a scan over the
// catalog normalizes each query only once.
type matcher struct {
	regions    []string
	categories []string
	product    string
	query      string
}

func newMatcher(f Filter) matcher {
	m := matcher{
		product: strings.ToLower(f.Product),
		query:   strings.ToLower(f.Query),
	}
	for _, r := range activeTokens(f.Regions) {
		m.regions = append(m.regions, strings.ToLower(r))
	}
	for _, c := range activeTokens(f.Categories) {
		m.categories = append(m.categories, normalizeCategory(c))
	}
	return m
}

func (m matcher) match(c domain.Company) bool {
	return m.matchRegion(c) &&
		m.matchCategory(c) &&
		m.matchProduct(c) &&
		m.matchQuery(c)
}

// Region uses substring containment: locations are free text such as
// "Curitiba - Paraná".
func (m matcher) matchRegion(c domain.Company) bool {
	if len(m.regions) == 0 {
		return true
	}
	if c.Location == "" {
		return false
	}
	loc := strings.ToLower(c.Location)
	for _, r := range m.regions {
		if strings.Contains(loc, r) {
			return true
		}
	}
	return false
}

// Category uses equality after trimming and lowercasing.
func (m matcher) matchCategory(c domain.Company) bool {
	if len(m.categories) == 0 {
		return true
	}
	if len(c.Categories) == 0 {
		return false
	}
	for _, have := range c.Categories {
		if slices.Contains(m.categories, normalizeCategory(have)) {
			return true
		}
	}
	return false
}

func (m matcher) matchProduct(c domain.Company) bool {
	if m.product == "" {
		return true
	}
	if len(c.Products) == 0 {
		return false
	}
	for _, p := range c.Products {
		if strings.Contains(strings.ToLower(p), m.product) {
			return true
		}
	}
	return false
}

func (m matcher) matchQuery(c domain.Company) bool {
	if m.query == "" {
		return true
	}
	for _, field := range []string{c.Name, c.ShortDescription, c.LongDescription} {
		if field != "" && strings.Contains(strings.ToLower(field), m.query) {
			return true
		}
	}
	return false
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// activeTokens drops blank selections; a blank token would otherwise match
// every location.
func activeTokens(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
