package catalog

import (
	"net/url"
	"strings"
)

// Query parameter names of the catalog page.
const (
	paramRegion   = "estado"
	paramCategory = "categoria"
	paramProduct  = "produto"
	paramQuery    = "q"
)

// ParseFilter reads a Filter from query parameters. estado and categoria may
// repeat and may hold comma separated lists.
func ParseFilter(q url.Values) Filter {
	return Filter{
		Regions:    SplitList(q[paramRegion]...),
		Categories: SplitList(q[paramCategory]...),
		Product:    strings.TrimSpace(q.Get(paramProduct)),
		Query:      strings.TrimSpace(q.Get(paramQuery)),
	}
}

// HasFilterParams reports whether any catalog filter parameter was sent,
// even a blank one.
func HasFilterParams(q url.Values) bool {
	for _, key := range []string{paramRegion, paramCategory, paramProduct, paramQuery} {
		if _, ok := q[key]; ok {
			return true
		}
	}
	return false
}

// SplitList splits comma separated values, trims them and drops blanks.
func SplitList(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// UpdateCompanyRequest is a partial update; nil fields are left untouched.
type UpdateCompanyRequest struct {
	Name             *string
	LongDescription  *string
	ShortDescription *string
	Phone            *string
	Location         *string
	Products         []string
	Categories       []string
	setProducts      bool
	setCategories    bool
}

func (r *UpdateCompanyRequest) SetProducts(p []string) {
	r.Products, r.setProducts = p, true
}

func (r *UpdateCompanyRequest) SetCategories(c []string) {
	r.Categories, r.setCategories = c, true
}

// CategoryOption is one entry of the category checkbox list.
type CategoryOption struct {
	Name string `json:"nome"`
}

// State is a Brazilian federative unit offered as a region filter.
type State struct {
	Code string `json:"sigla"`
	Name string `json:"nome"`
}
