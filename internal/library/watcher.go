package library

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gifpal/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change represents a library-relevant file event in a watched folder.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors folders for GIF files appearing or disappearing,
// using fsnotify.
type Watcher struct {
	// Folders being watched
	directories []string

	// Channel delivering GIF changes, closed exactly once by the
	// event goroutine
	changeChan chan Change
	closeOnce  sync.Once

	// Channel to signal stop
	stopChan chan struct{}

	// Closed by the event goroutine when it exits
	doneChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the directories list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// NewWatcher creates a folder watcher for library changes.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		directories: []string{},
		changeChan:  make(chan Change, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory adds a folder to watch for GIF changes.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Info("Watching library folder")
	return nil
}

// Changes returns the channel that delivers GIF file changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changeChan
}

// Start begins watching. Only events whose file name looks like a GIF
// are forwarded: Create/Write for files that exist, Remove/Rename for
// ones that are gone.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})

	go func() {
		// The event goroutine owns changeChan: closing it here, after
		// the loop has exited, means no send can ever hit a closed
		// channel.
		defer func() {
			w.closeOnce.Do(func() { close(w.changeChan) })
			close(w.doneChan)
		}()
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				if !IsGifName(event.Name) {
					continue
				}

				if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
					info, err := os.Stat(event.Name)
					if err != nil {
						// File may have been deleted right after the event
						continue
					}
					if info.IsDir() {
						continue
					}
				} else if !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				change := Change{
					Path:      event.Name,
					Op:        event.Op,
					Timestamp: time.Now(),
				}

				// Non-blocking send so the loop never wedges on a
				// slow consumer
				select {
				case w.changeChan <- change:
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("Change channel is full, dropped event")
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Info("Library watcher started")
	return nil
}

// Stop halts the watcher and closes the change channel. It returns
// once the event goroutine has finished, so no further changes are
// delivered after Stop.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false
	done := w.doneChan
	w.mutex.Unlock()

	<-done
	log.Info("Library watcher stopped")
}

// IsRunning returns whether the watcher is currently active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the list of watched folders.
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}

// Apply folds a change into the library: new GIFs are added, vanished
// ones removed. Add failures are logged and skipped so one bad file
// never stops the stream.
func Apply(m *Manager, c Change) {
	if c.Op.Has(fsnotify.Remove) || c.Op.Has(fsnotify.Rename) {
		m.Remove(c.Path)
		return
	}
	if err := m.Add(c.Path); err != nil {
		log.LogWithFields(log.F("gif", c.Path), log.F("error", err)).Warn("Ignoring watched file")
	}
}
