package tui

import (
	"fmt"
	"strings"

	"broadcast-mode/internal/boot"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) viewBoot(width, height int) string {
	seq := m.bootSeq
	var b strings.Builder
	b.WriteString(styleTitle().Render("◉ BROADCAST MODE"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(m.brand))
	b.WriteString("\n\n")
	for i := 0; i <= seq.Index(); i++ {
		mark := styleSuccess().Render("✓ ")
		if i == seq.Index() && !seq.AtEnd() {
			mark = lipgloss.NewStyle().Foreground(colorYellow).Render("▸ ")
		}
		b.WriteString(mark + boot.Lines[i] + "\n")
	}
	b.WriteString("\n")
	pct := seq.Progress()
	b.WriteString(m.bootBar.ViewAs(float64(pct)/100) + " " + styleLabel().Render(fmt.Sprintf("%3d%%", pct)))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("enter skip • d don't show again"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorPink).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
