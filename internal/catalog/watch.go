package catalog

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a catalog file when it changes on disk. Invalid edits are
// logged and skipped; the last good catalog stays in use.
type Watcher struct {
	path    string
	log     *zap.Logger
	fs      *fsnotify.Watcher
	updates chan *Catalog
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched so editors that
// replace the file (rename over it) are picked up too.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch: empty catalog path")
	}
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{
		path:    abs,
		log:     log,
		fs:      fw,
		updates: make(chan *Catalog, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers each successfully reloaded catalog. It is closed by Close.
func (w *Watcher) Updates() <-chan *Catalog { return w.updates }

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.updates)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			cat, err := Load(w.path)
			if err != nil {
				w.log.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Debug("catalog reloaded", zap.String("path", w.path), zap.Int("projects", cat.Len()))
			w.publish(cat)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watch error", zap.Error(err))
		}
	}
}

// publish keeps only the newest pending catalog.
func (w *Watcher) publish(cat *Catalog) {
	select {
	case w.updates <- cat:
		return
	default:
	}
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cat:
	default:
	}
}
