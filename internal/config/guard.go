package config

import "sync"

// Guard serializes access to a Config shared between the UI event
// loop and background goroutines such as the scheduler and the
// library watcher. All reads and writes of the shared record outside
// the owning thread go through View or Update.
type Guard struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewGuard wraps cfg for shared access.
func NewGuard(cfg *Config) *Guard {
	return &Guard{cfg: cfg}
}

// View runs fn with the config read-locked. fn must not mutate the
// record or retain the pointer past its return.
func (g *Guard) View(fn func(*Config)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(g.cfg)
}

// Update runs fn with the config write-locked.
func (g *Guard) Update(fn func(*Config)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.cfg)
}
