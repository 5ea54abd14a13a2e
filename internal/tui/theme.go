package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"broadcast-mode/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The look is neon-on-dark, but the TUI must stay readable on light terminals,
// so every color is an AdaptiveColor and "faint" is only applied on dark
// backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorSurfaceBg lipgloss.TerminalColor = ac("255", "234")
	colorControlBg lipgloss.TerminalColor = ac("252", "236")

	// Neon accents.
	colorPink   lipgloss.TerminalColor = ac("162", "#ff4fd8")
	colorCyan   lipgloss.TerminalColor = ac("31", "#3ef2ff")
	colorYellow lipgloss.TerminalColor = ac("136", "#ffd84f")
	colorGreen  lipgloss.TerminalColor = ac("28", "#59ff8a")
	colorRed    lipgloss.TerminalColor = ac("160", "#ff5f6d")
	colorAccent                        = colorPink

	colorCardBorder     lipgloss.TerminalColor = ac("250", "240")
	colorSelectedBorder lipgloss.TerminalColor = colorCyan
	colorDisabledFg     lipgloss.TerminalColor = ac("248", "239")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorPink)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorRed)
}

func styleSuccess() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorGreen)
}

// stylePill renders a small selectable chip (status filter, intensity, dock).
func stylePill(active, disabled bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case disabled:
		return st.Foreground(colorDisabledFg)
	case active:
		return st.Bold(true).Foreground(ac("255", "#101018")).Background(colorCyan)
	default:
		return st.Foreground(colorSurfaceFg).Background(colorControlBg)
	}
}

func styleFocused(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(colorPink).Underline(true)
	}
	return lipgloss.NewStyle().Foreground(colorSurfaceFg)
}

func statusColor(st model.Status) lipgloss.TerminalColor {
	switch st {
	case model.StatusLive:
		return colorGreen
	case model.StatusInProgress:
		return colorYellow
	default:
		return colorMuted
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable
// colors in a TUI by accident, so only NO_COLOR is honoured here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) BROADCAST_TUI_THEME=light|dark|auto
// 2) BROADCAST_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic ("fg;bg")
// 4) macOS appearance
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("BROADCAST_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("BROADCAST_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
