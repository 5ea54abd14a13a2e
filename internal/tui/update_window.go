package tui

import (
	"time"

	"broadcast-mode/internal/modal"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (m appModel) screenSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}
	return w, h
}

// winRect is the window's outer box in screen cells, including the drag offset.
func (m appModel) winRect() rect {
	sw, sh := m.screenSize()
	var w, h int
	switch {
	case m.win != nil && m.win.Maximized():
		w, h = sw-2, sh-2
	case m.narrow():
		w, h = sw, sh-2
	default:
		w, h = min(88, sw-6), min(32, sh-4)
	}
	w, h = max(w, 24), max(h, 12)

	x, y := (sw-w)/2, (sh-h)/2
	if m.win != nil {
		off := m.win.Offset()
		x += off.X
		y += off.Y
	}
	return rect{x: clampInt(x, 0, max(sw-w, 0)), y: clampInt(y, 0, max(sh-h, 0)), w: w, h: h}
}

// refreshWinBody re-renders the scrollable body for the current size and
// unlock state.
func (m *appModel) refreshWinBody() {
	if m.win == nil {
		return
	}
	r := m.winRect()
	innerW := r.w - 4
	bodyH := max(r.h-2-m.windowChromeLines(innerW), 3)
	if m.winBody.Width == 0 {
		m.winBody = viewport.New(innerW, bodyH)
	}
	m.winBody.Width = innerW
	m.winBody.Height = bodyH
	m.winBody.SetContent(renderWindowBody(m.win.Project(), m.win.Unlocked(), innerW))
}

func (m appModel) updateWindowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.winBody, cmd = m.winBody.Update(msg)
		return m, cmd
	}
	switch m.win.Key(k) {
	case modal.ActionClose:
		return m, m.requestClose()
	case modal.ActionActivate:
		return m, m.activateWindowControl(m.win.Focus().Current())
	}
	return m, nil
}

func (m *appModel) activateWindowControl(id string) tea.Cmd {
	if m.win == nil {
		return nil
	}
	switch id {
	case modal.CtlDotClose, modal.CtlClose:
		return m.requestClose()
	case modal.CtlDotMin:
		m.win.Minimize()
		m.refreshWinBody()
	case modal.CtlDotMax:
		res := m.win.PressMaximize(m.now())
		m.publish(res.Strength, "maximize")
		win, tap := m.winSeq, res.Seq
		settle := tea.Tick(modal.TapDebounce, func(time.Time) tea.Msg { return maximizeSettleMsg{win: win, tap: tap} })
		if res.Unlock && m.win.Unlocked() {
			m.refreshWinBody()
			return tea.Batch(settle, m.showFlash("Behind the build unlocked", false))
		}
		return settle
	case modal.CtlOpenLink:
		return openURL(m.win.PrimaryURL())
	case modal.CtlSecondary:
		return openURL(m.win.SecondaryURL())
	case modal.CtlCopyLink:
		if u := m.win.PrimaryURL(); u != "" {
			return copyCmd(u)
		}
	default:
		if i, ok := modal.ThumbIndex(id); ok {
			m.win.SelectImage(i)
		}
	}
	return nil
}

func (m appModel) updateWindowMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	r := m.winRect()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.winBody, cmd = m.winBody.Update(msg)
			return m, cmd
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !r.contains(msg.X, msg.Y) {
			// Backdrop.
			return m, m.requestClose()
		}
		for _, c := range m.win.Focus().Focusable() {
			if m.inZone("win:"+c.ID, msg) {
				m.win.Focus().Focus(c.ID)
				return m, m.activateWindowControl(c.ID)
			}
		}
		if msg.Y == r.y+1 {
			m.win.BeginDrag(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if m.win.Dragging() {
			m.win.DragTo(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		m.win.EndDrag()
	}
	return m, nil
}
