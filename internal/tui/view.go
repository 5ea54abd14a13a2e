package tui

import (
	"strings"

	"broadcast-mode/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	width, height := m.screenSize()

	var frame string
	if m.bootVisible() {
		frame = normalizePane(m.viewBoot(width, height), width, height)
	} else {
		frame = m.viewScreen(width, height)
		switch m.modal {
		case modalProject:
			if m.win != nil {
				r := m.winRect()
				frame = placeOverlay(dimBackground(frame), m.viewWindow(r), r.x, r.y, width)
			}
		case modalDiagnostics:
			r := m.diagRect()
			frame = placeOverlay(dimBackground(frame), m.viewDiagnostics(r), r.x, r.y, width)
		}
	}

	frame = m.overlay.Apply(frame, width, m.now())
	if m.zones != nil {
		return m.zones.Scan(frame)
	}
	return frame
}

// viewScreen lays out header, body, dock and status/help rows.
func (m appModel) viewScreen(width, height int) string {
	header := m.viewHeader(width)
	dock := m.viewDock(width)
	status := m.viewStatusLine(width)
	helpLine := normalizePane(m.help.ShortHelpView(m.contextKeys()), width, 1)

	bodyH := max(height-4, 1)
	var body string
	switch m.screen {
	case screenProjects:
		body = m.viewBrowser(m.projects, "PROJECTS", width, bodyH)
	case screenArchive:
		body = m.viewBrowser(m.archive, "ARCHIVE", width, bodyH)
	case screenStudio:
		body = m.viewStudio(width, bodyH)
	case screenContact:
		body = m.viewContact(width, bodyH)
	default:
		body = m.viewHome(width, bodyH)
	}
	body = normalizePane(body, width, bodyH)

	return strings.Join([]string{header, body, dock, status, helpLine}, "\n")
}

func (m appModel) viewHeader(width int) string {
	app := m.screen.app()
	left := styleTitle().Render("◉ BROADCAST MODE") + styleMuted().Render("  /  ") + styleLabel().Render(strings.ToUpper(app.Label))
	right := styleMuted().Render(m.brand+"  ") + lipgloss.NewStyle().Foreground(colorYellow).Render(m.now().Format("15:04"))
	gap := width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return normalizePane(left, width, 1)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewDock(width int) string {
	parts := make([]string, 0, len(model.Apps))
	for _, a := range model.Apps {
		label := a.Key + " " + a.Label
		if m.narrow() {
			label = a.Key + " " + a.Label[:min(4, len(a.Label))]
		}
		parts = append(parts, m.mark("dock:"+a.Route, stylePill(a.Route == m.screen.route(), false).Render(label)))
	}
	return normalizePane(" "+strings.Join(parts, " "), width, 1)
}

// viewStatusLine shows the current location (the address bar) and any flash.
func (m appModel) viewStatusLine(width int) string {
	left := styleMuted().Render("⌁ ") + lipgloss.NewStyle().Foreground(colorCyan).Render(m.currentLocation())
	if m.flash == "" {
		return normalizePane(left, width, 1)
	}
	st := styleSuccess()
	if m.flashErr {
		st = styleError()
	}
	right := st.Render(m.flash)
	gap := width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 2 {
		return normalizePane(right, width, 1)
	}
	return left + strings.Repeat(" ", gap) + right
}
