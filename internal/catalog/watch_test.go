package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const oneProject = `
- {id: solo, title: Solo, summary: s, status: live, type: [x]}
`

const twoProjects = `
- {id: solo, title: Solo, summary: s, status: live, type: [x]}
- {id: duo, title: Duo, summary: s, status: archived, type: [y]}
`

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneProject), 0o644))

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	// An invalid edit is skipped.
	require.NoError(t, os.WriteFile(path, []byte("- {id: [broken"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(twoProjects), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cat := <-w.Updates():
			if cat != nil && cat.Len() == 2 {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneProject), 0o644))

	w, err := Watch(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, open := <-w.Updates()
	require.False(t, open)
}
