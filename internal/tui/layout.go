package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This keeps JoinHorizontal/overlay composition stable.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// dimBackground strips styling (and zone markers) from a frame and renders it
// faint, so nothing behind a window reads as interactive.
func dimBackground(s string) string {
	st := faintIfDark(lipgloss.NewStyle().Foreground(colorDisabledFg))
	lines := strings.Split(xansi.Strip(s), "\n")
	for i, ln := range lines {
		lines[i] = st.Render(ln)
	}
	return strings.Join(lines, "\n")
}

// placeOverlay draws fg on top of bg with its top-left corner at (x, y). bg
// must already be normalized to width columns.
func placeOverlay(bg, fg string, x, y, width int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, fl := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		fw := xansi.StringWidth(fl)
		if x+fw > width {
			fl = xansi.Truncate(fl, width-x, "")
			fw = xansi.StringWidth(fl)
		}
		bl := bgLines[row]
		left := xansi.Truncate(bl, x, "")
		if lw := xansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := xansi.Cut(bl, x+fw, width)
		bgLines[row] = left + fl + right
	}
	return strings.Join(bgLines, "\n")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
