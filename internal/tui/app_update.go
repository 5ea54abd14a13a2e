package tui

import (
	"time"

	"broadcast-mode/internal/boot"
	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/modal"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vp := catalog.ViewportFor(msg.Width)
		m.projects.SetViewport(vp)
		m.archive.SetViewport(vp)
		m.clampFocus()
		m.bootBar.Width = clampInt(msg.Width-20, 10, 48)
		m.contact.resize(msg.Width)
		if m.win != nil {
			m.win.SetNarrow(vp == catalog.Narrow)
			m.refreshWinBody()
		}
		return m, nil

	case bootTickMsg:
		if msg.seq != m.bootTick || !m.bootVisible() {
			return m, nil
		}
		if m.bootSeq.Tick() {
			m.boot.Finish()
			return m, nil
		}
		return m, m.scheduleBootTick()

	case tickerTickMsg:
		m.ticker.Advance()
		return m, tickerTick()

	case clockTickMsg:
		return m, clockTick()

	case noiseTickMsg:
		if msg.seq != m.noiseSeq {
			return m, nil
		}
		m.overlay.Advance()
		return m, m.scheduleNoise()

	case burstMsg:
		d := m.overlay.Trigger(msg.burst, m.now())
		cmds := []tea.Cmd{waitForBurst(m.bursts)}
		if d > 0 {
			m.flickerSeq++
			seq := m.flickerSeq
			cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg { return flickerDoneMsg{seq: seq} }))
		}
		return m, tea.Batch(cmds...)

	case flickerDoneMsg:
		// Nothing to update; the next View renders without the flicker.
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case catalogReloadedMsg:
		m.applyCatalog(msg.cat)
		cmd := m.showFlash("Catalog reloaded", false)
		if m.watcher != nil {
			return m, tea.Batch(cmd, waitForCatalog(m.watcher.Updates()))
		}
		return m, cmd

	case windowOpenedMsg:
		if m.win != nil && msg.seq == m.winSeq {
			m.win.Mounted()
		}
		return m, nil

	case windowClosedMsg:
		if m.win != nil && msg.seq == m.winSeq {
			m.finishClose()
		}
		return m, nil

	case maximizeSettleMsg:
		if m.win != nil && msg.win == m.winSeq && m.win.SettleMaximize(msg.tap) {
			m.refreshWinBody()
		}
		return m, nil

	case transmitDoneMsg:
		return m, m.contact.resolve(msg, m.log)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.contact.spinner, cmd = m.contact.spinner.Update(msg)
		if !m.contact.machine.Sending() {
			return m, nil
		}
		return m, cmd

	case urlOpenDoneMsg:
		if msg.err != nil {
			m.log.Warn("open url", zap.Error(msg.err))
			return m, m.showFlash("Could not open link: "+msg.err.Error(), true)
		}
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			return m, m.showFlash("Copy failed: "+msg.err.Error(), true)
		}
		return m, m.showFlash("Link copied", false)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Cursor blink and other widget-internal messages.
	return m.forwardToFocusedInput(msg)
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		m.saveState()
		return m, tea.Quit
	}

	if m.bootVisible() {
		switch {
		case boot.SkipKey(k):
			m.boot.Finish()
			m.bootTick++
		case k == "d":
			m.boot.Disable()
			m.bootOn = false
			m.bootTick++
		}
		return m, nil
	}

	if m.modal == modalNone && m.konami.Feed(k, m.typing()) {
		m.openDiagnostics()
		return m, nil
	}

	switch m.modal {
	case modalProject:
		return m.updateWindowKey(msg)
	case modalDiagnostics:
		if k == "esc" || k == "q" || k == "enter" {
			m.modal = modalNone
		}
		return m, nil
	}

	if !m.typing() {
		switch k {
		case "q":
			m.saveState()
			return m, tea.Quit
		case "1", "2", "3", "4", "5":
			m.setScreen(screenForPath(appRoute(k)))
			return m, nil
		case "B":
			if m.overlay.Enabled {
				m.publish(effects.Medium, "hotkey")
			}
			return m, nil
		}
	}

	switch m.screen {
	case screenHome:
		return m.updateHomeKey(k)
	case screenProjects, screenArchive:
		return m.updateBrowserKey(msg)
	case screenStudio:
		return m.updateStudioKey(k)
	case screenContact:
		return m.updateContactKey(msg)
	}
	return m, nil
}

func appRoute(key string) string {
	for _, s := range []screen{screenHome, screenProjects, screenStudio, screenArchive, screenContact} {
		if s.app().Key == key {
			return s.route()
		}
	}
	return "/"
}

func (m *appModel) openDiagnostics() {
	m.searching = false
	m.search.Blur()
	m.modal = modalDiagnostics
	m.publish(effects.High, "konami")
}

func (m appModel) updateHomeKey(k string) (tea.Model, tea.Cmd) {
	launcher := launcherApps()
	switch k {
	case "left", "up":
		if m.launcherFocus > 0 {
			m.launcherFocus--
		}
	case "right", "down":
		if m.launcherFocus < len(launcher)-1 {
			m.launcherFocus++
		}
	case "enter", " ":
		if len(launcher) > 0 {
			m.setScreen(screenForPath(launcher[m.launcherFocus].Route))
		}
	case "p":
		paused := m.ticker.TogglePause()
		if paused {
			return m, m.showFlash("Ticker paused", false)
		}
		return m, m.showFlash("Ticker resumed", false)
	}
	return m, nil
}

func (m *appModel) applyCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}
	m.cat = cat
	m.projects.SetCatalog(cat)
	m.archive.SetCatalog(cat)
	m.clampFocus()
	if m.win != nil && !cat.Has(m.win.Project().ID) {
		m.finishClose()
	}
}

func (m *appModel) forwardToFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	case m.screen == screenContact:
		cmd = m.contact.forward(msg)
	}
	return *m, cmd
}

// openProject opens the window for id on top of browser b. returnFocus names
// the card to refocus when the window closes.
func (m *appModel) openProject(b *catalog.Browser, id, returnFocus string) tea.Cmd {
	p, err := b.Catalog().Find(id)
	if err != nil {
		return m.showFlash("Unknown project: "+id, true)
	}
	if err := b.Open(id); err != nil {
		return m.showFlash(err.Error(), true)
	}
	m.searching = false
	m.search.Blur()
	m.win = modal.New(p, m.settings.Get().ReducedMotion, returnFocus)
	m.win.SetNarrow(m.narrow())
	m.winBrowser = b
	m.winSeq++
	m.modal = modalProject
	m.winBody.GotoTop()
	m.refreshWinBody()

	m.state.TouchRecent(id)
	m.saveState()
	if m.win.Phase() == modal.Opening {
		return windowOpenTick(m.winSeq)
	}
	return nil
}

// requestClose starts the close animation, or finishes at once under reduced motion.
func (m *appModel) requestClose() tea.Cmd {
	if m.win == nil {
		return nil
	}
	delay, ok := m.win.RequestClose()
	if !ok {
		return nil
	}
	if delay <= 0 {
		m.finishClose()
		return nil
	}
	seq := m.winSeq
	return tea.Tick(delay, func(time.Time) tea.Msg { return windowClosedMsg{seq: seq} })
}

// finishClose unmounts the window, clears the open parameter and returns focus
// to the card that opened it.
func (m *appModel) finishClose() {
	if m.win == nil {
		return
	}
	m.win.FinishClose()
	returnTo := m.win.ReturnFocus
	if m.winBrowser != nil {
		m.winBrowser.Close()
	}
	m.win = nil
	m.winBrowser = nil
	m.winSeq++
	m.modal = modalNone
	if b := m.activeBrowser(); b != nil && returnTo != "" {
		for i, p := range b.View().Page.Items {
			if p.ID == returnTo {
				m.focus = i
				break
			}
		}
	}
	m.saveState()
}

func (m *appModel) clampFocus() {
	b := m.activeBrowser()
	if b == nil {
		return
	}
	n := len(b.View().Page.Items)
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}
