// Package watcher reloads game state when save.json is edited outside the daemon.
package watcher

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hazzzi/maenggu-run/internal/models"
)

// DebounceDelay is how long a path must be quiet before it is processed.
const DebounceDelay = 100 * time.Millisecond

// SaveFile exposes the hashes needed to tell our own writes from external ones.
type SaveFile interface {
	Path() string
	Hash() (uint64, error)
	LastWrittenHash() uint64
}

// Reloader re-reads persisted state and notifies listeners.
type Reloader interface {
	Reload() (models.SaveState, error)
}

// Watcher watches the directory holding the save file.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	save      SaveFile
	reloader  Reloader
	logger    *slog.Logger
	done      chan struct{}
	stopOnce  sync.Once

	debounce   map[string]*time.Timer
	debounceMu sync.Mutex

	reloads chan models.SaveState
}

// New creates a watcher for save. logger may be nil.
func New(save SaveFile, reloader Reloader, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		save:      save,
		reloader:  reloader,
		logger:    logger,
		done:      make(chan struct{}),
		debounce:  make(map[string]*time.Timer),
		reloads:   make(chan models.SaveState, 8),
	}, nil
}

// Reloads delivers the state after each external reload. Deliveries are
// dropped when nobody reads.
func (w *Watcher) Reloads() <-chan models.SaveState {
	return w.reloads
}

// Start watches the save file's directory. The directory must exist.
func (w *Watcher) Start() error {
	// Watching the directory survives the rename in atomic writes.
	if err := w.fsWatcher.Add(filepath.Dir(w.save.Path())); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher and cancels pending debounced work.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Atomic writes land as Create or Rename on the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if filepath.Clean(event.Name) != filepath.Clean(w.save.Path()) {
		return
	}

	w.debounceEvent(event.Name, w.processSaveChange)
}

func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

// processSaveChange reloads unless the file on disk is the one we wrote.
func (w *Watcher) processSaveChange() {
	select {
	case <-w.done:
		return
	default:
	}

	hash, err := w.save.Hash()
	if err != nil {
		// Removed or mid-replace; the next event will catch up.
		w.logger.Debug("save file unreadable", "error", err)
		return
	}
	if hash == w.save.LastWrittenHash() {
		return
	}

	w.logger.Info("save file changed externally, reloading", "hash", hash)
	state, err := w.reloader.Reload()
	if err != nil {
		w.logger.Warn("external edit rejected, keeping current state", "error", err)
		return
	}

	select {
	case w.reloads <- state:
	default:
	}
}
