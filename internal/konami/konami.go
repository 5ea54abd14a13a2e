// Package konami recognises the ↑ ↑ ↓ ↓ ← → ← → B A key sequence.
package konami

import "strings"

type Key string

// Code is the sequence that unlocks the diagnostics panel.
var Code = []Key{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

// State is the match cursor: how many keys of Code have matched so far.
type State struct {
	Progress int
}

// Next is the pure transition. A mismatch resets the cursor, except that a key
// equal to Code[0] counts as the start of a new attempt. The bool is true
// exactly when the sequence completes; the returned state is then reset.
func Next(s State, k Key) (State, bool) {
	if s.Progress < 0 || s.Progress >= len(Code) {
		s.Progress = 0
	}
	if k == Code[s.Progress] {
		s.Progress++
		if s.Progress == len(Code) {
			return State{}, true
		}
		return s, false
	}
	if k == Code[0] {
		return State{Progress: 1}, false
	}
	return State{}, false
}

// KeyOf maps a bubbletea key string ("up", "B", "shift+b") onto a Key.
func KeyOf(s string) Key {
	s = strings.TrimPrefix(strings.ToLower(s), "shift+")
	return Key(s)
}

// Gate owns the cursor for one app. Only completions escape it.
type Gate struct {
	state State
}

// Feed advances the cursor. Keys typed into a text field are ignored and do not
// disturb the cursor.
func (g *Gate) Feed(key string, typing bool) bool {
	if typing {
		return false
	}
	var done bool
	g.state, done = Next(g.state, KeyOf(key))
	return done
}

func (g *Gate) Reset() { g.state = State{} }
