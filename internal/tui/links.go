package tui

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type urlOpenDoneMsg struct{ err error }

type copyDoneMsg struct {
	text string
	err  error
}

// openURL hands u to the OS opener. Links always leave the terminal app; the
// window stays open.
func openURL(u string) tea.Cmd {
	u = strings.TrimSpace(u)
	if u == "" {
		return func() tea.Msg { return urlOpenDoneMsg{err: errors.New("empty url")} }
	}
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", u)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", "", u)
		default:
			cmd = exec.Command("xdg-open", u)
		}
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		if err := cmd.Start(); err != nil {
			return urlOpenDoneMsg{err: err}
		}
		return urlOpenDoneMsg{err: cmd.Wait()}
	}
}

// copyToClipboard is a var so tests can stub the system clipboard.
var copyToClipboard = func(s string) error {
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}

func copyCmd(s string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{text: s, err: copyToClipboard(s)}
	}
}
