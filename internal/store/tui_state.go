package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It is "best effort": callers should tolerate missing/invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Route is the last location, e.g. "/projects?page=2&tag=Brand".
	Route string `json:"route,omitempty"`

	// RecentProjectIDs stores most-recently-opened project windows, newest first.
	RecentProjectIDs []string `json:"recentProjectIds,omitempty"`
}

const maxRecentProjects = 8

// TouchRecent moves id to the front of the recent list.
func (st *TUIState) TouchRecent(id string) {
	id = strings.TrimSpace(id)
	if st == nil || id == "" {
		return
	}
	out := []string{id}
	for _, existing := range st.RecentProjectIDs {
		if existing == id {
			continue
		}
		out = append(out, existing)
		if len(out) >= maxRecentProjects {
			break
		}
	}
	st.RecentProjectIDs = out
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, tuiStateFileName+".*.tmp", s.tuiStatePath(), b, 0o644)
}
