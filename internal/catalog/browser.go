package catalog

import (
	"strconv"
	"strings"

	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"
)

// Viewport is the layout class derived from the terminal width.
type Viewport int

const (
	Wide Viewport = iota
	Narrow
)

const (
	// NarrowBelow is the first width (in columns) that counts as wide.
	NarrowBelow = 100

	PageSizeWide   = 8
	PageSizeNarrow = 4
)

func ViewportFor(width int) Viewport {
	if width > 0 && width < NarrowBelow {
		return Narrow
	}
	return Wide
}

func (v Viewport) PageSize() int {
	if v == Narrow {
		return PageSizeNarrow
	}
	return PageSizeWide
}

func (v Viewport) Columns() int {
	if v == Narrow {
		return 1
	}
	return 2
}

func (v Viewport) String() string {
	if v == Narrow {
		return "narrow"
	}
	return "wide"
}

// View is everything the projects screen renders for the current state.
type View struct {
	Filtered []model.Project
	Featured []model.Project
	Page     Page
}

// Browser holds filter/page/open state and keeps a Location in sync with it.
// Every change replaces the location; there is no history stack.
type Browser struct {
	cat      *Catalog
	filter   Filter
	page     int
	openID   string
	viewport Viewport
	loc      Location

	// OnReplace, when set, receives each replaced location.
	OnReplace func(Location)
}

// NewBrowser seeds state from loc: q/status/tag filters, page (default 1 when
// absent or non-positive) and p, which opens a project only if it exists.
func NewBrowser(cat *Catalog, loc Location, vp Viewport) *Browser {
	b := &Browser{cat: cat, viewport: vp, loc: loc, page: 1}
	if loc.Path == "" {
		b.loc.Path = "/projects"
	}
	b.filter.Query = loc.Get(ParamQuery)
	if st, ok, err := statusutil.ParseFilter(loc.Get(ParamStatus)); err == nil && ok {
		b.filter.Status = st
	}
	if tag := strings.TrimSpace(loc.Get(ParamTag)); tag != "" && !strings.EqualFold(tag, "all") {
		b.filter.Tag = tag
	}
	if n, err := strconv.Atoi(loc.Get(ParamPage)); err == nil && n > 0 {
		b.page = n
	}
	if id := loc.Get(ParamOpen); id != "" && cat.Has(id) {
		b.openID = id
	}
	return b
}

func (b *Browser) Catalog() *Catalog { return b.cat }
func (b *Browser) Filter() Filter { return b.filter }
func (b *Browser) Viewport() Viewport { return b.viewport }
func (b *Browser) Location() Location { return b.loc }
func (b *Browser) OpenID() string { return b.openID }
func (b *Browser) Columns() int { return b.viewport.Columns() }
func (b *Browser) PageSize() int { return b.viewport.PageSize() }

// View derives the sorted, filtered and paginated lists.
func (b *Browser) View() View {
	sorted := Sorted(b.cat.Projects())
	filtered := b.filter.Apply(sorted)
	return View{
		Filtered: filtered,
		Featured: Featured(filtered, FeaturedCap),
		Page:     Paginate(filtered, b.page, b.PageSize()),
	}
}

// Page is the clamped current page.
func (b *Browser) Page() int {
	return b.View().Page.Page
}

func (b *Browser) SetQuery(q string) {
	b.filter.Query = q
	b.changed()
}

// SetStatus sets the status filter; "" clears it.
func (b *Browser) SetStatus(st model.Status) {
	b.filter.Status = st
	b.changed()
}

// SetTag sets the tag filter; "" clears it.
func (b *Browser) SetTag(tag string) {
	b.filter.Tag = tag
	b.changed()
}

func (b *Browser) SetFilter(f Filter) {
	b.filter = f
	b.changed()
}

func (b *Browser) SetPage(n int) {
	b.page = n
	b.changed()
}

func (b *Browser) NextPage() { b.SetPage(b.Page() + 1) }
func (b *Browser) PrevPage() { b.SetPage(b.Page() - 1) }

func (b *Browser) SetViewport(vp Viewport) {
	if vp == b.viewport {
		return
	}
	b.viewport = vp
	b.changed()
}

// SetCatalog swaps in a reloaded catalog. An open project that no longer exists
// is closed.
func (b *Browser) SetCatalog(cat *Catalog) {
	b.cat = cat
	if b.openID != "" && !cat.Has(b.openID) {
		b.openID = ""
	}
	b.changed()
}

// Open records id as the open project.
func (b *Browser) Open(id string) error {
	if !b.cat.Has(id) {
		return ErrNotFound
	}
	b.openID = id
	b.sync()
	return nil
}

// Close clears the open project, leaving the other parameters alone.
func (b *Browser) Close() {
	b.openID = ""
	b.sync()
}

// changed clamps the page to the current result set and syncs the location.
func (b *Browser) changed() {
	filtered := b.filter.Apply(b.cat.Projects())
	b.page = ClampPage(b.page, len(filtered), b.PageSize())
	b.sync()
}

func (b *Browser) sync() {
	next := b.loc.
		With(ParamQuery, strings.TrimSpace(b.filter.Query)).
		With(ParamStatus, string(b.filter.Status)).
		With(ParamTag, b.filter.Tag).
		With(ParamOpen, b.openID)
	page := ""
	if b.page > 1 {
		page = strconv.Itoa(b.page)
	}
	next = next.With(ParamPage, page)
	if next.Equal(b.loc) {
		return
	}
	b.loc = next
	if b.OnReplace != nil {
		b.OnReplace(next)
	}
}
