package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var diagnosticsEggs = []string{
	"↑ ↑ ↓ ↓ ← → ← → B A opens this panel",
	"Triple-press maximize in a project window",
	"Long-press a cassette or CD card",
	"Shift+B for a manual signal burst",
}

func (m appModel) diagRect() rect {
	sw, sh := m.screenSize()
	w, h := min(60, sw-2), min(18, sh-2)
	return rect{x: max((sw-w)/2, 0), y: max((sh-h)/2, 0), w: w, h: h}
}

func (m appModel) viewDiagnostics(r rect) string {
	innerW := r.w - 4
	rows := [][2]string{
		{"Mode", "Broadcast"},
		{"Overlay", "VHS"},
		{"Navigation", "Dock"},
	}
	lines := []string{styleTitle().Render("⚠ DIAGNOSTICS"), ""}
	for _, row := range rows {
		lines = append(lines, styleLabel().Render(padRight(row[0], 12))+row[1])
	}
	lines = append(lines, "", styleLabel().Render("Known anomalies"))
	for _, e := range diagnosticsEggs {
		lines = append(lines, "  • "+e)
	}
	lines = append(lines, "",
		lipgloss.NewStyle().Width(innerW).Foreground(colorYellow).Render("This site is intentionally playful. If you found this panel, you're the target audience."),
		"",
		styleMuted().Render("esc close"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(colorYellow).
		Padding(0, 1).
		Render(normalizePane(strings.Join(lines, "\n"), innerW, r.h-2))
}
