package konami

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var sequence = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

func feedAll(g *Gate, keys []string) int {
	fired := 0
	for _, k := range keys {
		if g.Feed(k, false) {
			fired++
		}
	}
	return fired
}

func TestExactSequenceFiresOnce(t *testing.T) {
	t.Parallel()

	var g Gate
	require.Equal(t, 1, feedAll(&g, sequence))
	require.Equal(t, 0, g.state.Progress)
}

func TestWrongKeyInMiddleDoesNotFire(t *testing.T) {
	t.Parallel()

	bad := append([]string{}, sequence...)
	bad[5] = "x"
	var g Gate
	require.Equal(t, 0, feedAll(&g, bad))
}

func TestRefeedAfterResetSucceeds(t *testing.T) {
	t.Parallel()

	var g Gate
	bad := append([]string{}, sequence[:6]...)
	bad = append(bad, "q")
	require.Equal(t, 0, feedAll(&g, bad))
	require.Equal(t, 1, feedAll(&g, sequence))
	require.Equal(t, 1, feedAll(&g, sequence))
}

func TestMismatchOnFirstKeyRestartsAtOne(t *testing.T) {
	t.Parallel()

	s, done := Next(State{Progress: 4}, "up")
	require.False(t, done)
	require.Equal(t, 1, s.Progress)

	s, _ = Next(State{Progress: 4}, "b")
	require.Equal(t, 0, s.Progress)
}

func TestTypingIsIgnored(t *testing.T) {
	t.Parallel()

	var g Gate
	feedAll(&g, sequence[:5])
	for _, k := range []string{"h", "i"} {
		require.False(t, g.Feed(k, true))
	}
	fired := false
	for _, k := range sequence[5:] {
		fired = g.Feed(k, false) || fired
	}
	require.True(t, fired)
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, Key("b"), KeyOf("B"))
	require.Equal(t, Key("a"), KeyOf("shift+a"))
	require.Equal(t, Key("left"), KeyOf("left"))
}
