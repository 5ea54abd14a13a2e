package catalog

import (
	"sort"
	"strconv"
	"strings"

	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"
)

// FeaturedCap bounds the featured strip.
const FeaturedCap = 10

// Filter is the browser's filter state. Empty Status/Tag mean "all".
type Filter struct {
	Query  string
	Status model.Status
	Tag    string
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && f.Status == "" && f.Tag == ""
}

// Match reports whether p passes every active filter. The query is a
// case-insensitive substring match on title, summary and client.
func (f Filter) Match(p model.Project) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Summary), q) &&
			!strings.Contains(strings.ToLower(p.Client), q) {
			return false
		}
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	return true
}

// Apply keeps the projects that match f, preserving order.
func (f Filter) Apply(projects []model.Project) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders projects in place: featured first, then status rank, then
// numeric year descending (non-numeric counts as 0), then title.
func Sort(projects []model.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return less(projects[i], projects[j])
	})
}

// Sorted returns a sorted copy.
func Sorted(projects []model.Project) []model.Project {
	out := append([]model.Project(nil), projects...)
	Sort(out)
	return out
}

func less(a, b model.Project) bool {
	if a.Featured != b.Featured {
		return a.Featured
	}
	if ra, rb := statusutil.Rank(a.Status), statusutil.Rank(b.Status); ra != rb {
		return ra < rb
	}
	if ya, yb := yearOf(a), yearOf(b); ya != yb {
		return ya > yb
	}
	return a.Title < b.Title
}

func yearOf(p model.Project) int {
	n, err := strconv.Atoi(strings.TrimSpace(p.Year))
	if err != nil {
		return 0
	}
	return n
}

// Page is one slice of a paginated list.
type Page struct {
	Items      []model.Project `json:"items" yaml:"items"`
	Page       int             `json:"page" yaml:"page"`
	TotalPages int             `json:"totalPages" yaml:"totalPages"`
	Total      int             `json:"total" yaml:"total"`
	PageSize   int             `json:"pageSize" yaml:"pageSize"`
}

// TotalPages is ceil(total/size), never less than 1.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage moves page into [1, TotalPages(total, size)].
func ClampPage(page, total, size int) int {
	if page < 1 {
		return 1
	}
	if tp := TotalPages(total, size); page > tp {
		return tp
	}
	return page
}

// Paginate returns the requested page, clamped.
func Paginate(projects []model.Project, page, size int) Page {
	if size <= 0 {
		size = PageSizeWide
	}
	page = ClampPage(page, len(projects), size)
	start := (page - 1) * size
	end := start + size
	if end > len(projects) {
		end = len(projects)
	}
	items := []model.Project{}
	if start < end {
		items = append(items, projects[start:end]...)
	}
	return Page{
		Items:      items,
		Page:       page,
		TotalPages: TotalPages(len(projects), size),
		Total:      len(projects),
		PageSize:   size,
	}
}

// Featured returns up to limit featured projects in the given (sorted) order.
func Featured(projects []model.Project, limit int) []model.Project {
	if limit <= 0 {
		limit = FeaturedCap
	}
	out := []model.Project{}
	for _, p := range projects {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Tags returns every tag in the catalog, sorted case-insensitively.
func Tags(projects []model.Project) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range projects {
		for _, t := range p.Type {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}
