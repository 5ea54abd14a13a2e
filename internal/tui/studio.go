package tui

import (
	"fmt"
	"strings"

	"broadcast-mode/internal/docs"
	"broadcast-mode/internal/modal"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/settings"
	"broadcast-mode/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	ctlVHS           = "vhs"
	ctlIntensity     = "intensity-"
	ctlReducedMotion = "reduced-motion"
	ctlBoot          = "boot"
)

var intensities = []model.VhsIntensity{model.IntensityLow, model.IntensityMedium, model.IntensityHigh}

// studioControls lists the visual settings; intensity pills are disabled while
// the overlay is off.
func (m appModel) studioControls() []modal.Control {
	st := m.settings.Get()
	out := []modal.Control{{ID: ctlVHS, Label: "VHS overlay"}}
	for _, i := range intensities {
		out = append(out, modal.Control{ID: ctlIntensity + string(i), Label: strings.ToUpper(string(i)), Disabled: !st.VhsEnabled})
	}
	out = append(out,
		modal.Control{ID: ctlReducedMotion, Label: "Reduced motion"},
		modal.Control{ID: ctlBoot, Label: "Boot sequence"},
	)
	return out
}

func (m appModel) updateStudioKey(k string) (tea.Model, tea.Cmd) {
	st := m.settings.Get()
	switch k {
	case "tab", "down":
		m.studio.Next()
	case "shift+tab", "up":
		m.studio.Prev()
	case "enter", " ":
		return m, m.activateStudioControl(m.studio.Current())
	case "v":
		return m, m.activateStudioControl(ctlVHS)
	case "m":
		return m, m.activateStudioControl(ctlReducedMotion)
	case "i":
		if !st.VhsEnabled {
			return m, nil
		}
		next := intensities[0]
		for n, i := range intensities {
			if i == st.VhsIntensity {
				next = intensities[(n+1)%len(intensities)]
			}
		}
		return m, m.activateStudioControl(ctlIntensity + string(next))
	case "pgdown":
		m.studioScroll += 5
	case "pgup":
		m.studioScroll = max(m.studioScroll-5, 0)
	}
	return m, nil
}

func (m *appModel) activateStudioControl(id string) tea.Cmd {
	st := m.settings.Get()
	switch {
	case id == ctlVHS:
		return m.updateSettings(settings.Patch{VhsEnabled: settings.Bool(!st.VhsEnabled)})
	case id == ctlReducedMotion:
		return m.updateSettings(settings.Patch{ReducedMotion: settings.Bool(!st.ReducedMotion)})
	case strings.HasPrefix(id, ctlIntensity):
		if !st.VhsEnabled {
			return nil
		}
		return m.updateSettings(settings.Patch{VhsIntensity: settings.Intensity(model.VhsIntensity(strings.TrimPrefix(id, ctlIntensity)))})
	case id == ctlBoot:
		if err := m.prefs.SetBootEnabled(!m.bootOn); err != nil {
			return m.showFlash("Could not save boot preference", true)
		}
		m.bootOn = !m.bootOn
		if m.bootOn {
			return m.showFlash("Boot sequence enabled for new sessions", false)
		}
		return m.showFlash("Boot sequence disabled", false)
	}
	return nil
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func (m appModel) viewStudio(width, height int) string {
	st := m.settings.Get()
	cur := m.studio.Current()

	control := func(id, text string) string {
		prefix := "  "
		if id == cur {
			prefix = "▸ "
		}
		return m.mark("studio:"+id, prefix+styleFocused(id == cur).Render(text))
	}

	var left []string
	left = append(left, styleTitle().Render("VISUAL SETTINGS"), "")
	left = append(left, control(ctlVHS, "VHS overlay     "+onOff(st.VhsEnabled)))

	pills := make([]string, 0, len(intensities))
	for _, i := range intensities {
		id := ctlIntensity + string(i)
		pill := stylePill(st.VhsIntensity == i, !st.VhsEnabled).Render(strings.ToUpper(string(i)))
		if id == cur {
			pill = lipgloss.NewStyle().Underline(true).Render("▸") + pill
		}
		pills = append(pills, m.mark("studio:"+id, pill))
	}
	left = append(left, "  Intensity  "+strings.Join(pills, " "))
	left = append(left, control(ctlReducedMotion, "Reduced motion  "+onOff(st.ReducedMotion)))
	left = append(left, control(ctlBoot, "Boot sequence   "+onOff(m.bootOn)))
	left = append(left, "", styleMuted().Render("v vhs • i intensity • m motion"), "")

	left = append(left, styleTitle().Render("SYSTEM STATUS"), "")
	overlayState := "OFF"
	if st.VhsEnabled {
		overlayState = "VHS / " + strings.ToUpper(string(st.VhsIntensity))
	}
	motion := "FULL"
	if st.ReducedMotion {
		motion = "REDUCED"
	}
	rows := [][2]string{
		{"Mode", "BROADCAST"},
		{"Signal", "STABLE"},
		{"Overlay", overlayState},
		{"Motion", motion},
		{"Catalog", fmt.Sprintf("%d projects", m.cat.Len())},
		{"Storage", m.storageLabel()},
	}
	for _, r := range rows {
		left = append(left, "  "+styleLabel().Render(fmt.Sprintf("%-8s", r[0]))+" "+r[1])
	}

	var pages []string
	for _, topic := range docs.Studio() {
		if md, ok := docs.Get(topic); ok {
			pages = append(pages, md)
		}
	}

	if m.narrow() {
		docsW := width - 2
		body := strings.Join(left, "\n") + "\n\n" + renderMarkdown(strings.Join(pages, "\n\n"), docsW)
		return scrollLines(body, m.studioScroll, height)
	}

	leftW := 42
	docsW := max(width-leftW-3, 20)
	leftPane := normalizePane(strings.Join(left, "\n"), leftW, height)
	right := scrollLines(renderMarkdown(strings.Join(pages, "\n\n"), docsW), m.studioScroll, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "   ", normalizePane(right, docsW, height))
}

func (m appModel) storageLabel() string {
	if _, ok := m.prefs.Local.(*store.LocalStorage); ok {
		return "SQLITE"
	}
	return "MEMORY"
}

// scrollLines drops the first offset lines (clamped so the last screenful
// stays visible).
func scrollLines(s string, offset, height int) string {
	lines := strings.Split(s, "\n")
	offset = clampInt(offset, 0, max(len(lines)-height, 0))
	return strings.Join(lines[offset:], "\n")
}
