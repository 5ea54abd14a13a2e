package store

import (
	"errors"
	"os"
	"path/filepath"
)

const sqliteFileName = "state.sqlite"

// ErrUnavailable is returned by storage backends that cannot be used at all
// (for example a read-only or missing state directory).
var ErrUnavailable = errors.New("storage unavailable")

// Store is the on-disk state directory (~/.broadcast by default).
type Store struct {
	Dir string
}

// Open returns a Store rooted at dir, or at the default config dir when dir is empty.
func Open(dir string) (Store, error) {
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return Store{}, err
		}
		dir = d
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	if s.Dir == "" {
		return ErrUnavailable
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// LogPath is where the debug log is written when logging is enabled.
func (s Store) LogPath() string {
	return filepath.Join(s.Dir, "broadcast.log")
}
