package tui

import (
	"strings"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// launcherApps are the tiles on the home screen (every app but home itself).
func launcherApps() []model.AppDefinition {
	out := make([]model.AppDefinition, 0, len(model.Apps))
	for _, a := range model.Apps {
		if a.Route != "/" {
			out = append(out, a)
		}
	}
	return out
}

const homeBanner = `█▄▄ █▀█ █▀█ ▄▀█ █▀▄ █▀▀ ▄▀█ █▀ ▀█▀
█▄█ █▀▄ █▄█ █▀█ █▄▀ █▄▄ █▀█ ▄█  █ `

func (m appModel) viewHome(width, height int) string {
	var b strings.Builder

	banner := homeBanner
	if m.narrow() {
		banner = "BROADCAST"
	}
	b.WriteString(styleTitle().Render(banner))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(m.brand + " • studio portfolio • signal mode"))
	b.WriteString("\n\n")

	tiles := make([]string, 0, 4)
	for i, a := range launcherApps() {
		focused := i == m.launcherFocus
		border := colorCardBorder
		if focused {
			border = colorSelectedBorder
		}
		body := styleLabel().Render("["+a.Key+"] "+strings.ToUpper(a.Label)) + "\n" + styleMuted().Render(a.Subtitle)
		tile := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(18).
			Render(body)
		tiles = append(tiles, m.mark("app:"+a.Route, tile))
	}
	if m.narrow() {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, tiles...))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(tiles, " ")...))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewTicker(width))
	b.WriteString("\n\n")

	featured := catalog.Featured(catalog.Sorted(m.cat.Projects()), 3)
	if len(featured) > 0 {
		b.WriteString(styleLabel().Render("ON AIR"))
		b.WriteString("\n")
		for _, p := range featured {
			b.WriteString("  " + formatGlyph(p.Format) + " " + p.Title + styleMuted().Render("  "+p.Summary))
			b.WriteString("\n")
		}
	}

	if recent := m.recentProjects(3); len(recent) > 0 {
		b.WriteString("\n")
		b.WriteString(styleLabel().Render("RECENTLY VIEWED"))
		b.WriteString("\n")
		for _, p := range recent {
			b.WriteString("  " + styleMuted().Render("↺ ") + p.Title)
			b.WriteString("\n")
		}
	}

	return normalizePane(b.String(), width, height)
}

func (m appModel) viewTicker(width int) string {
	msg := m.ticker.Current()
	st := lipgloss.NewStyle().Foreground(colorCyan)
	switch msg.Tone {
	case model.ToneHint:
		st = lipgloss.NewStyle().Foreground(colorYellow)
	case model.ToneEgg:
		st = lipgloss.NewStyle().Foreground(colorPink)
	}
	prefix := lipgloss.NewStyle().Bold(true).Foreground(colorRed).Render("● LIVE ")
	if m.ticker.Paused() {
		prefix = styleMuted().Render("❚❚ PAUSED ")
	}
	return normalizePane(prefix+st.Render(msg.Text), width, 1)
}

func (m appModel) recentProjects(n int) []model.Project {
	if m.state == nil {
		return nil
	}
	var out []model.Project
	for _, id := range m.state.RecentProjectIDs {
		p, err := m.cat.Find(id)
		if err != nil {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}

func interleave(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func formatGlyph(f model.Format) string {
	if f == model.FormatCD {
		return lipgloss.NewStyle().Foreground(colorCyan).Render("◎")
	}
	return lipgloss.NewStyle().Foreground(colorPink).Render("▭")
}
