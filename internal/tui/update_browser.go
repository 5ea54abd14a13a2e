package tui

import (
	"strings"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"

	tea "github.com/charmbracelet/bubbletea"
)

// statusCycle is the order `s` steps through; "" is "all".
var statusCycle = append([]model.Status{""}, statusutil.All()...)

func (m appModel) updateBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.activeBrowser()
	k := msg.String()

	if m.searching {
		switch k {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != b.Filter().Query {
			b.SetQuery(m.search.Value())
			m.focus = 0
		}
		return m, cmd
	}

	items := b.View().Page.Items
	if next, ok := catalog.NavigateGrid(m.focus, k, b.Columns(), len(items)); ok {
		m.focus = next
		return m, nil
	}

	switch k {
	case "enter", " ":
		if m.focus < len(items) {
			id := items[m.focus].ID
			return m, m.openProject(b, id, id)
		}
	case "/":
		m.searching = true
		m.search.SetValue(b.Filter().Query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "s":
		if m.screen == screenArchive {
			return m, nil
		}
		b.SetStatus(nextStatus(b.Filter().Status))
		m.focus = 0
	case "t":
		b.SetTag(nextTag(catalog.Tags(b.Catalog().Projects()), b.Filter().Tag))
		m.focus = 0
	case "c":
		f := catalog.Filter{}
		if m.screen == screenArchive {
			f.Status = model.StatusArchived
		}
		b.SetFilter(f)
		m.search.SetValue("")
		m.focus = 0
	case "]", "pgdown":
		b.NextPage()
		m.focus = 0
	case "[", "pgup":
		b.PrevPage()
		m.focus = 0
	case "home":
		m.focus = 0
	case "end":
		m.focus = max(len(items)-1, 0)
	}
	return m, nil
}

func nextStatus(cur model.Status) model.Status {
	for i, st := range statusCycle {
		if st == cur {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ""
}

// nextTag steps through "" (all) and then every tag; an unknown current tag
// restarts at all.
func nextTag(tags []string, cur string) string {
	if cur == "" {
		if len(tags) == 0 {
			return ""
		}
		return tags[0]
	}
	for i, t := range tags {
		if strings.EqualFold(t, cur) {
			if i+1 < len(tags) {
				return tags[i+1]
			}
			return ""
		}
	}
	return ""
}
