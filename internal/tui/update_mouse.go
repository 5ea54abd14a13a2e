package tui

import (
	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.bootVisible() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.boot.Finish()
			m.bootTick++
		}
		return m, nil
	}

	switch m.modal {
	case modalProject:
		return m.updateWindowMouse(msg)
	case modalDiagnostics:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.diagRect().contains(msg.X, msg.Y) {
			m.modal = modalNone
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mousePress(msg)
	case tea.MouseActionRelease:
		return m.mouseRelease(msg)
	}
	return m, nil
}

func (m appModel) mousePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	for _, a := range model.Apps {
		if m.inZone("dock:"+a.Route, msg) || m.inZone("app:"+a.Route, msg) {
			m.setScreen(screenForPath(a.Route))
			return m, nil
		}
	}

	switch m.screen {
	case screenProjects, screenArchive:
		b := m.activeBrowser()
		for i, p := range b.View().Page.Items {
			if m.inZone("card:"+p.ID, msg) {
				m.focus = i
				m.pressID = p.ID
				m.pressAt = m.now()
				return m, nil
			}
		}
	case screenStudio:
		for _, c := range m.studio.Focusable() {
			if m.inZone("studio:"+c.ID, msg) {
				m.studio.Focus(c.ID)
				return m, m.activateStudioControl(c.ID)
			}
		}
	case screenContact:
		for _, c := range m.contact.ring.Focusable() {
			if m.inZone("contact:"+c.ID, msg) {
				m.contact.focus(c.ID)
				if c.ID == ctlSubmit || c.ID == ctlReset {
					return m, m.activateContactControl(c.ID)
				}
				return m, nil
			}
		}
	}
	return m, nil
}

// mouseRelease finishes a card press: a short press opens the project, a long
// one only fires a burst.
func (m appModel) mouseRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	id := m.pressID
	m.pressID = ""
	b := m.activeBrowser()
	if id == "" || b == nil || !m.inZone("card:"+id, msg) {
		return m, nil
	}
	if m.now().Sub(m.pressAt) >= LongPress {
		if m.overlay.Enabled {
			m.publish(effects.Medium, "long-press")
		}
		return m, nil
	}
	return m, m.openProject(b, id, id)
}
