package tui

import (
	"fmt"
	"strings"

	"broadcast-mode/internal/modal"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

var windowDots = []struct {
	id    string
	color lipgloss.TerminalColor
}{
	{modal.CtlDotClose, colorRed},
	{modal.CtlDotMin, colorYellow},
	{modal.CtlDotMax, colorGreen},
}

func isDot(id string) bool {
	return id == modal.CtlDotClose || id == modal.CtlDotMin || id == modal.CtlDotMax
}

func (m appModel) viewWindow(r rect) string {
	innerW := r.w - 4
	p := m.win.Project()
	cur := m.win.Focus().Current()

	// Header: traffic-light dots, title, status.
	dots := make([]string, 0, len(windowDots))
	for _, d := range windowDots {
		glyph := "●"
		if d.id == cur {
			glyph = "◉"
		}
		dots = append(dots, m.mark("win:"+d.id, lipgloss.NewStyle().Foreground(d.color).Render(glyph)))
	}
	title := lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(p.Title))
	status := lipgloss.NewStyle().Foreground(statusColor(p.Status)).Render(strings.ToUpper(statusutil.Label(p.Status)))
	left := strings.Join(dots, " ") + "  " + title
	gap := innerW - xansi.StringWidth(left) - xansi.StringWidth(status)
	header := left + strings.Repeat(" ", max(gap, 1)) + status

	lines := []string{header, m.windowRule(innerW, "")}
	lines = append(lines, m.windowGallery(innerW)...)
	lines = append(lines, m.winBody.View())

	scroll := ""
	if !m.winBody.AtTop() || !m.winBody.AtBottom() {
		scroll = fmt.Sprintf(" %3.0f%% ", m.winBody.ScrollPercent()*100)
	}
	lines = append(lines, m.windowRule(innerW, scroll))
	lines = append(lines, m.windowControlLines(innerW)...)

	border := colorSelectedBorder
	switch m.win.Phase() {
	case modal.Opening, modal.Closing:
		border = colorCardBorder
	}
	if m.win.Maximized() {
		border = colorPink
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(normalizePane(strings.Join(lines, "\n"), innerW, r.h-2))
}

func (m appModel) windowRule(width int, label string) string {
	n := max(width-xansi.StringWidth(label), 0)
	return styleMuted().Render(strings.Repeat("─", n/2) + label + strings.Repeat("─", n-n/2))
}

// windowGallery is the active image line plus, for multi-image galleries, the
// thumbnail row.
func (m appModel) windowGallery(width int) []string {
	gallery := m.win.Gallery()
	img, ok := m.win.Active()
	if !ok {
		return []string{styleMuted().Render("▣ PREVIEW SIGNAL • no images on file")}
	}
	alt := img.Alt
	if alt == "" {
		alt = "untitled frame"
	}
	line := styleLabel().Render(fmt.Sprintf("▣ %d/%d ", m.win.Index()+1, len(gallery))) + alt + styleMuted().Render("  "+img.Src)
	out := []string{normalizePane(line, width, 1)}
	if len(gallery) < 2 {
		return out
	}
	cur := m.win.Focus().Current()
	thumbs := make([]string, 0, len(gallery))
	for i := range gallery {
		id := modal.ThumbID(i)
		thumb := stylePill(i == m.win.Index(), false).Render(fmt.Sprintf("%d", i+1))
		if id == cur {
			thumb = lipgloss.NewStyle().Underline(true).Render(thumb)
		}
		thumbs = append(thumbs, m.mark("win:"+id, thumb))
	}
	return append(out, strings.Join(thumbs, " ")+styleMuted().Render("  ←/→"))
}

// windowControlLines flows the action controls into as many rows as needed.
func (m appModel) windowControlLines(width int) []string {
	cur := m.win.Focus().Current()
	var lines []string
	line, lineW := "", 0
	for _, c := range m.win.Focus().Controls() {
		if c.Hidden || isDot(c.ID) {
			continue
		}
		if _, ok := modal.ThumbIndex(c.ID); ok {
			continue
		}
		pill := stylePill(c.ID == cur, c.Disabled).Render(c.Label)
		w := xansi.StringWidth(pill)
		if lineW > 0 && lineW+1+w > width {
			lines = append(lines, line)
			line, lineW = "", 0
		}
		if lineW > 0 {
			line += " "
			lineW++
		}
		line += m.mark("win:"+c.ID, pill)
		lineW += w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// windowChromeLines is every window row except the scrollable body.
func (m appModel) windowChromeLines(innerW int) int {
	n := 3 // header, top rule, bottom rule
	n += len(m.windowGallery(innerW))
	n += len(m.windowControlLines(innerW))
	return n
}

// renderWindowBody is the project write-up. Behind-the-build only shows once
// unlocked.
func renderWindowBody(p model.Project, unlocked bool, width int) string {
	var b strings.Builder
	meta := []string{}
	if p.Client != "" {
		meta = append(meta, "**Client:** "+p.Client)
	}
	if p.Year != "" {
		meta = append(meta, "**Year:** "+p.Year)
	}
	if p.Role != "" {
		meta = append(meta, "**Role:** "+p.Role)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · ") + "\n\n")
	}
	b.WriteString(p.Summary + "\n\n")
	if p.Context != "" {
		b.WriteString("## Context\n\n" + p.Context + "\n\n")
	}
	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("## " + title + "\n\n")
		for _, it := range items {
			b.WriteString("- " + it + "\n")
		}
		b.WriteString("\n")
	}
	writeList("Highlights", p.Highlights)
	writeList("Constraints", p.Constraints)
	writeList("Outcomes", p.Outcomes)
	if len(p.Stack) > 0 {
		b.WriteString("## Stack\n\n")
		for i, s := range p.Stack {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("`" + s + "`")
		}
		b.WriteString("\n\n")
	}
	if len(p.Type) > 0 {
		b.WriteString("*" + strings.Join(p.Type, " / ") + "*\n\n")
	}
	if unlocked && p.BehindTheBuild != nil {
		btb := p.BehindTheBuild
		title := btb.Title
		if title == "" {
			title = "Behind the build"
		}
		b.WriteString("---\n\n## ▲ " + title + "\n\n" + btb.Body + "\n\n")
		for _, n := range btb.Notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return renderMarkdown(b.String(), width)
}
