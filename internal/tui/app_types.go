package tui

import (
	"strings"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/effects"
	"broadcast-mode/internal/model"
)

type screen int

const (
	screenHome screen = iota
	screenProjects
	screenStudio
	screenArchive
	screenContact
)

var screenRoutes = map[screen]string{
	screenHome:     "/",
	screenProjects: "/projects",
	screenStudio:   "/studio",
	screenArchive:  "/archive",
	screenContact:  "/contact",
}

func (s screen) route() string { return screenRoutes[s] }

func (s screen) app() model.AppDefinition {
	for _, a := range model.Apps {
		if a.Route == s.route() {
			return a
		}
	}
	return model.Apps[0]
}

// screenForPath maps a location path to a screen; unknown paths land on home.
func screenForPath(path string) screen {
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if path == "" {
		return screenHome
	}
	for s, r := range screenRoutes {
		if r == path {
			return s
		}
	}
	return screenHome
}

type modalKind int

const (
	modalNone modalKind = iota
	modalProject
	modalDiagnostics
)

// Timer messages carry the seq they were scheduled under; a message whose seq
// no longer matches is stale and dropped.

type bootTickMsg struct{ seq int }

type tickerTickMsg struct{}

type noiseTickMsg struct{ seq int }

type flickerDoneMsg struct{ seq int }

type flashDoneMsg struct{ seq int }

type windowOpenedMsg struct{ seq int }

type windowClosedMsg struct{ seq int }

type maximizeSettleMsg struct {
	win int
	tap int
}

type burstMsg struct{ burst effects.Burst }

type catalogReloadedMsg struct{ cat *catalog.Catalog }

type transmitDoneMsg struct {
	seq int
	err error
}
