package catalog

import (
	"fmt"
	"testing"

	"broadcast-mode/internal/model"

	"github.com/stretchr/testify/require"
)

func bigCatalog(t *testing.T, n int) *Catalog {
	t.Helper()
	ps := make([]model.Project, n)
	for i := range ps {
		ps[i] = proj(fmt.Sprintf("p%02d", i), model.StatusLive, "", false)
	}
	ps[0].Status = model.StatusArchived
	c, err := New(ps)
	require.NoError(t, err)
	return c
}

func mustLoc(t *testing.T, s string) Location {
	t.Helper()
	l, err := ParseLocation(s)
	require.NoError(t, err)
	return l
}

func TestBrowser_OpenAndCloseKeepOtherParams(t *testing.T) {
	t.Parallel()

	c := bigCatalog(t, 17)
	b := NewBrowser(c, mustLoc(t, "/projects?page=2&utm=mail"), Wide)
	var replaced []string
	b.OnReplace = func(l Location) { replaced = append(replaced, l.String()) }

	require.NoError(t, b.Open("p03"))
	require.Equal(t, "p03", b.Location().Get(ParamOpen))
	require.Equal(t, "2", b.Location().Get(ParamPage))

	b.Close()
	require.Equal(t, "/projects?page=2&utm=mail", b.Location().String())
	require.Len(t, replaced, 2)

	require.ErrorIs(t, b.Open("missing"), ErrNotFound)
}

func TestBrowser_SeedsFromLocation(t *testing.T) {
	t.Parallel()

	c := bigCatalog(t, 17)

	b := NewBrowser(c, mustLoc(t, "/projects?p=p05&page=3"), Wide)
	require.Equal(t, "p05", b.OpenID())
	require.Equal(t, 3, b.Page())

	b = NewBrowser(c, mustLoc(t, "/projects?p=ghost&page=-2"), Wide)
	require.Empty(t, b.OpenID())
	require.Equal(t, 1, b.Page())

	b = NewBrowser(c, mustLoc(t, "/projects?page=9"), Wide)
	require.Equal(t, 3, b.Page(), "page clamps into range")

	b = NewBrowser(c, mustLoc(t, "/archive?status=archived"), Wide)
	require.Equal(t, model.StatusArchived, b.Filter().Status)
	require.Len(t, b.View().Filtered, 1)
}

func TestBrowser_FilterChangeClampsPage(t *testing.T) {
	t.Parallel()

	c := bigCatalog(t, 17)
	b := NewBrowser(c, mustLoc(t, "/projects"), Wide)
	b.SetPage(3)
	require.Equal(t, "3", b.Location().Get(ParamPage))

	b.SetStatus(model.StatusArchived)
	require.Equal(t, 1, b.Page())
	require.Equal(t, "archived", b.Location().Get(ParamStatus))
	require.Empty(t, b.Location().Get(ParamPage), "page 1 is omitted")

	b.SetStatus("")
	b.SetQuery("  ")
	require.Equal(t, "/projects", b.Location().String())
}

func TestBrowser_ViewportChangesPageSize(t *testing.T) {
	t.Parallel()

	c := bigCatalog(t, 17)
	b := NewBrowser(c, mustLoc(t, "/projects?page=4"), Narrow)
	require.Equal(t, 4, b.Page())
	require.Len(t, b.View().Page.Items, PageSizeNarrow)

	b.SetViewport(Wide)
	require.Equal(t, 3, b.Page())
	require.Equal(t, 2, b.Columns())
}

func TestBrowser_SetCatalogClosesMissingProject(t *testing.T) {
	t.Parallel()

	b := NewBrowser(bigCatalog(t, 5), mustLoc(t, "/projects?p=p04"), Wide)
	require.Equal(t, "p04", b.OpenID())
	b.SetCatalog(bigCatalog(t, 3))
	require.Empty(t, b.OpenID())
	require.Empty(t, b.Location().Get(ParamOpen))
}

func TestViewportFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, Narrow, ViewportFor(80))
	require.Equal(t, Wide, ViewportFor(120))
	require.Equal(t, Wide, ViewportFor(0))
}

func TestNavigateGrid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		focus, cols, n int
		key            string
		want           int
	}{
		{0, 2, 5, "right", 1},
		{0, 2, 5, "left", 0},
		{1, 2, 5, "down", 3},
		{3, 2, 5, "down", 4},
		{3, 2, 5, "up", 1},
		{2, 1, 4, "down", 3},
		{4, 2, 5, "right", 4},
	}
	for _, tc := range cases {
		got, ok := NavigateGrid(tc.focus, tc.key, tc.cols, tc.n)
		if !ok || got != tc.want {
			t.Fatalf("NavigateGrid(%d,%q,%d,%d)=%d,%v want %d", tc.focus, tc.key, tc.cols, tc.n, got, ok, tc.want)
		}
	}
	if _, ok := NavigateGrid(0, "enter", 2, 5); ok {
		t.Fatalf("expected enter to be unhandled")
	}
}
