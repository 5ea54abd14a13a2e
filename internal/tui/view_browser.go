package tui

import (
	"fmt"
	"strings"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) viewBrowser(b *catalog.Browser, title string, width, height int) string {
	v := b.View()
	f := b.Filter()
	var lines []string

	// Filters row.
	search := styleMuted().Render("/ search")
	if m.searching {
		search = m.search.View()
	} else if f.Query != "" {
		search = styleLabel().Render("/ ") + f.Query
	}
	row := styleTitle().Render(title) + "  " + search
	if m.screen != screenArchive {
		pills := make([]string, 0, len(statusCycle))
		for _, st := range statusCycle {
			label := "All"
			if st != "" {
				label = statusutil.Label(st)
			}
			pills = append(pills, stylePill(st == f.Status, false).Render(label))
		}
		row += "  " + strings.Join(pills, "")
	}
	tag := "all"
	if f.Tag != "" {
		tag = f.Tag
	}
	row += "  " + styleMuted().Render("tag: ") + styleLabel().Render(tag)
	lines = append(lines, row)

	// Featured strip.
	if len(v.Featured) > 0 && !m.narrow() {
		names := make([]string, 0, len(v.Featured))
		for _, p := range v.Featured {
			names = append(names, p.Title)
		}
		lines = append(lines, styleLabel().Render("★ FEATURED ")+styleMuted().Render(strings.Join(names, " • ")))
	}
	lines = append(lines, "")

	if len(v.Page.Items) == 0 {
		lines = append(lines, "", styleMuted().Render("  NO SIGNAL. Try a different search or filter (c clears)."))
		return normalizePane(strings.Join(lines, "\n"), width, height)
	}

	cols := b.Columns()
	cardW := (width - (cols - 1)) / cols
	var rows []string
	for i := 0; i < len(v.Page.Items); i += cols {
		var cards []string
		for j := i; j < min(i+cols, len(v.Page.Items)); j++ {
			if j > i {
				cards = append(cards, " ")
			}
			cards = append(cards, m.viewCard(v.Page.Items[j], j == m.focus, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	headerN := len(lines)
	lines = append(lines, rows...)
	lines = append(lines, styleMuted().Render(fmt.Sprintf("  page %d/%d • %d results • %s", v.Page.Page, v.Page.TotalPages, v.Page.Total, b.Viewport())))

	// Keep the focused card on screen.
	out := strings.Split(strings.Join(lines, "\n"), "\n")
	if len(out) > height {
		focusRow := headerN + (m.focus/cols)*cardHeight
		start := clampInt(focusRow+cardHeight-height, 0, len(out)-height)
		out = out[start:]
	}
	return normalizePane(strings.Join(out, "\n"), width, height)
}

const cardHeight = 5

func (m appModel) viewCard(p model.Project, focused bool, width int) string {
	inner := max(width-4, 10)
	border := colorCardBorder
	if focused {
		border = colorSelectedBorder
	}

	status := lipgloss.NewStyle().Foreground(statusColor(p.Status)).Render(strings.ToUpper(statusutil.Label(p.Status)))
	title := formatGlyph(p.Format) + " " + lipgloss.NewStyle().Bold(true).Render(p.Title)
	gap := inner - xansi.StringWidth(title) - xansi.StringWidth(status)
	head := title + strings.Repeat(" ", max(gap, 1)) + status

	meta := []string{}
	if p.Year != "" {
		meta = append(meta, p.Year)
	}
	if p.Client != "" {
		meta = append(meta, p.Client)
	}
	if len(p.Type) > 0 {
		meta = append(meta, strings.Join(p.Type, ", "))
	}

	body := strings.Join([]string{
		head,
		styleMuted().Render(strings.Join(meta, " • ")),
		p.Summary,
	}, "\n")
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(normalizePane(body, inner, cardHeight-2))
	return m.mark("card:"+p.ID, card)
}
