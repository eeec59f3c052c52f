// Package library manages the user's collection of GIF files.
package library

import (
	"image/gif"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gifpal/internal/config"
	"gifpal/internal/errors"
	"gifpal/internal/log"

	"github.com/gobwas/glob"
)

// gifPattern matches GIF file names, case already lowered.
var gifPattern = glob.MustCompile("*.gif")

// Entry is one library item with its derived validity.
type Entry struct {
	Path  string
	Valid bool
}

// Manager owns the GIF collection backed by the configuration record.
// It shares the config guard with every other holder, so library
// mutations never race with settings changes. It is safe for
// concurrent use by the GUI, the scheduler and the library watcher.
type Manager struct {
	guard *config.Guard
	save  func() error

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewManager creates a library manager over the guarded config. The
// save function persists the config after library mutations and may
// be nil; it is called with the config write lock held and must not
// re-enter the guard.
func NewManager(guard *config.Guard, save func() error) *Manager {
	return &Manager{
		guard: guard,
		save:  save,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// IsGifName reports whether the file name looks like a GIF.
func IsGifName(path string) bool {
	return gifPattern.Match(strings.ToLower(filepath.Base(path)))
}

// Decodable checks that the file at path parses as a GIF.
func Decodable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("file not found", path, errors.FileNotFound, err)
		}
		return errors.NewFileError("cannot open file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	if _, err := gif.DecodeConfig(f); err != nil {
		return errors.NewFileError("not a valid GIF file", path, errors.InvalidGif, err)
	}
	return nil
}

// Dimensions returns the native width and height of the GIF at path.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.NewFileError("cannot open file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	cfg, err := gif.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.NewFileError("not a valid GIF file", path, errors.InvalidGif, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Add appends a GIF to the library. The file must exist, carry a .gif
// name and decode as a GIF. Duplicates are ignored.
func (m *Manager) Add(path string) error {
	if !IsGifName(path) {
		return errors.NewFileError("not a GIF file name", path, errors.InvalidPath, nil)
	}
	if err := Decodable(path); err != nil {
		return err
	}

	m.guard.Update(func(cfg *config.Config) {
		for _, existing := range cfg.GifPaths {
			if existing == path {
				return
			}
		}
		cfg.GifPaths = append(cfg.GifPaths, path)
		m.persistLocked()
		log.LogWithFields(log.F("gif", path)).Info("Added GIF to library")
	})
	return nil
}

// Remove drops a GIF from the library, along with any saved overlay
// position for it. Removing an absent path is a no-op.
func (m *Manager) Remove(path string) {
	m.guard.Update(func(cfg *config.Config) {
		for i, existing := range cfg.GifPaths {
			if existing == path {
				cfg.GifPaths = append(cfg.GifPaths[:i], cfg.GifPaths[i+1:]...)
				delete(cfg.CustomPositions, filepath.Base(path))
				m.persistLocked()
				log.LogWithFields(log.F("gif", path)).Info("Removed GIF from library")
				return
			}
		}
	})
}

// Paths returns the library paths, pruning entries whose files have
// vanished from disk.
func (m *Manager) Paths() []string {
	var out []string
	m.guard.Update(func(cfg *config.Config) {
		existing := cfg.GifPaths[:0]
		pruned := false
		for _, path := range cfg.GifPaths {
			if _, err := os.Stat(path); err == nil {
				existing = append(existing, path)
			} else {
				pruned = true
				log.LogWithFields(log.F("gif", path)).Warn("Dropping missing GIF from library")
			}
		}
		cfg.GifPaths = existing
		if pruned {
			m.persistLocked()
		}

		out = make([]string, len(cfg.GifPaths))
		copy(out, cfg.GifPaths)
	})
	return out
}

// Entries returns the library with per-file validity (exists and
// decodes as a GIF). Unlike Paths, nothing is pruned.
func (m *Manager) Entries() []Entry {
	var paths []string
	m.guard.View(func(cfg *config.Config) {
		paths = make([]string, len(cfg.GifPaths))
		copy(paths, cfg.GifPaths)
	})

	entries := make([]Entry, len(paths))
	for i, path := range paths {
		entries[i] = Entry{Path: path, Valid: Decodable(path) == nil}
	}
	return entries
}

// Len returns the number of library entries.
func (m *Manager) Len() int {
	var n int
	m.guard.View(func(cfg *config.Config) {
		n = len(cfg.GifPaths)
	})
	return n
}

// Random picks a uniformly random GIF from the library, pruning
// missing files first. Returns false when the library is empty.
func (m *Manager) Random() (string, bool) {
	paths := m.Paths()
	if len(paths) == 0 {
		return "", false
	}

	m.rngMu.Lock()
	idx := m.rng.Intn(len(paths))
	m.rngMu.Unlock()
	return paths[idx], true
}

// ScanDir walks dir recursively and adds every decodable GIF found.
// It returns the number of GIFs added.
func (m *Manager) ScanDir(dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, errors.NewFileError("cannot access directory", dir, errors.FileNotFound, err)
	}
	if !info.IsDir() {
		return 0, errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	added := 0
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.LogWithFields(log.F("path", path), log.F("error", err)).Warn("Skipping unreadable path during scan")
			return nil
		}
		if d.IsDir() || !IsGifName(path) {
			return nil
		}
		before := m.Len()
		if addErr := m.Add(path); addErr != nil {
			log.LogWithFields(log.F("gif", path), log.F("error", addErr)).Warn("Skipping undecodable GIF during scan")
			return nil
		}
		if m.Len() > before {
			added++
		}
		return nil
	})
	return added, err
}

// persistLocked saves the config via the injected save function.
// Caller must hold the config write lock.
func (m *Manager) persistLocked() {
	if m.save == nil {
		return
	}
	if err := m.save(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Failed to persist library change")
	}
}
