// Package schedule drives the companion's show/hide display cycle.
package schedule

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gifpal/internal/config"
	"gifpal/internal/log"
	"gifpal/pkg/types"
)

const (
	// DefaultJitter spreads each interval by this fraction either way.
	DefaultJitter = 0.1
	// PreviewDuration is how long a manually triggered GIF stays up.
	PreviewDuration = 5 * time.Second
)

// Display renders and removes overlays. The GUI plugs in real overlay
// windows; headless frontends and tests plug in stand-ins.
type Display interface {
	Show(path string, opts types.OverlayOptions) error
	Hide()
}

// Picker supplies GIFs to display. Implemented by library.Manager.
type Picker interface {
	Random() (string, bool)
	Remove(path string)
	Len() int
}

// Options is a point-in-time snapshot of the scheduling settings.
// The scheduler re-reads them every cycle, so settings changes take
// effect without a restart.
type Options struct {
	Interval   time.Duration
	MinDisplay time.Duration
	MaxDisplay time.Duration
	Jitter     float64
	OverlayFor func(path string) types.OverlayOptions
}

// FromConfig builds an options source backed by the shared config.
// Every read goes through the guard, so the settings UI can change
// values while the cycle is running.
func FromConfig(guard *config.Guard) func() Options {
	overlayFor := func(path string) types.OverlayOptions {
		var overlay types.OverlayOptions
		guard.View(func(cfg *config.Config) {
			overlay = cfg.OverlayOptions(path)
		})
		return overlay
	}
	return func() Options {
		opts := Options{Jitter: DefaultJitter, OverlayFor: overlayFor}
		guard.View(func(cfg *config.Config) {
			opts.Interval = cfg.Interval()
			opts.MinDisplay = cfg.MinDisplay()
			opts.MaxDisplay = cfg.MaxDisplay()
		})
		return opts
	}
}

type kickRequest struct {
	path string
}

// Scheduler decides when the companion shows a GIF and for how long.
// A single timer drives an idle/showing state machine on a dedicated
// goroutine; the GUI event loop is never blocked.
type Scheduler struct {
	lib     Picker
	display Display
	opts    func() Options

	mu           sync.RWMutex
	running      bool
	state        types.CompanionState
	nextFire     time.Time
	displayEnd   time.Time
	shown        int
	lastShown    string
	stopCh       chan struct{}
	doneCh       chan struct{}
	kickCh       chan kickRequest
	previewTimer *time.Timer

	rng *rand.Rand
}

// New creates a scheduler over the given library, display and options
// source.
func New(lib Picker, display Display, opts func() Options) *Scheduler {
	return &Scheduler{
		lib:     lib,
		display: display,
		opts:    opts,
		state:   types.StateStopped,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins the display cycle. The first overlay is due one
// jittered interval from now.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler is already running")
	}
	s.running = true
	s.state = types.StateIdle
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.kickCh = make(chan kickRequest, 1)
	stopCh, doneCh, kickCh := s.stopCh, s.doneCh, s.kickCh
	s.mu.Unlock()

	go s.run(stopCh, doneCh, kickCh)
	log.Info("Companion scheduler started")
	return nil
}

// Stop cancels all pending show/hide timers and hides a visible
// overlay. It blocks until the cycle goroutine has exited, so no
// overlay appears after Stop returns. Stopping twice is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.previewTimer != nil {
		s.previewTimer.Stop()
		s.previewTimer = nil
		s.display.Hide()
	}
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.state = types.StateStopped
	close(s.stopCh)
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
	log.Info("Companion scheduler stopped")
}

// Running reports whether the display cycle is active.
func (s *Scheduler) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Status returns a snapshot of the scheduler.
func (s *Scheduler) Status() types.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Status{
		Running:     s.running,
		State:       s.state,
		NextFire:    s.nextFire,
		DisplayEnd:  s.displayEnd,
		ShownCount:  s.shown,
		LastShown:   s.lastShown,
		LibrarySize: s.lib.Len(),
	}
}

// TriggerNow shows a random library GIF immediately for the preview
// duration, whether or not the cycle is running.
func (s *Scheduler) TriggerNow() error {
	return s.ShowNow("")
}

// ShowNow shows the given GIF (or a random one when path is empty)
// immediately for the preview duration.
func (s *Scheduler) ShowNow(path string) error {
	if path == "" {
		var ok bool
		path, ok = s.lib.Random()
		if !ok {
			return fmt.Errorf("the library is empty")
		}
	}

	s.mu.RLock()
	running := s.running
	kickCh := s.kickCh
	s.mu.RUnlock()

	if running {
		// The run loop performs the display; drop the request if one
		// is already pending.
		select {
		case kickCh <- kickRequest{path: path}:
		default:
		}
		return nil
	}

	// Stopped: one-shot preview with its own timer, cancelled by Stop.
	if err := s.display.Show(path, s.overlayFor(path)); err != nil {
		return err
	}
	s.mu.Lock()
	if s.previewTimer != nil {
		s.previewTimer.Stop()
	}
	s.previewTimer = time.AfterFunc(PreviewDuration, s.display.Hide)
	s.shown++
	s.lastShown = path
	s.mu.Unlock()
	return nil
}

// run is the cycle goroutine: a single timer alternating between the
// idle and showing states.
func (s *Scheduler) run(stopCh, doneCh chan struct{}, kickCh chan kickRequest) {
	defer close(doneCh)

	timer := time.NewTimer(s.scheduleNext(nil))
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			s.display.Hide()
			return

		case req := <-kickCh:
			s.showKick(req, timer)

		case <-timer.C:
			s.mu.RLock()
			state := s.state
			s.mu.RUnlock()

			switch state {
			case types.StateShowing:
				s.display.Hide()
				s.mu.Lock()
				s.state = types.StateIdle
				s.mu.Unlock()
				s.scheduleNext(timer)

			case types.StateIdle:
				if dur, ok := s.showRandom(); ok {
					timer.Reset(dur)
				} else {
					// Empty library or a bad file: skip this cycle
					// and keep scheduling.
					s.scheduleNext(timer)
				}
			}
		}
	}
}

// showRandom displays a random GIF and returns its display duration.
// A failed load prunes the offending path and reports false.
func (s *Scheduler) showRandom() (time.Duration, bool) {
	path, ok := s.lib.Random()
	if !ok {
		log.Debug("No GIFs available to display")
		return 0, false
	}

	if err := s.display.Show(path, s.overlayFor(path)); err != nil {
		log.LogWithFields(log.F("gif", path), log.F("error", err)).Warn("Failed to display GIF, dropping it")
		s.lib.Remove(path)
		return 0, false
	}

	dur := s.pickDuration()
	s.mu.Lock()
	s.state = types.StateShowing
	s.displayEnd = time.Now().Add(dur)
	s.shown++
	s.lastShown = path
	s.mu.Unlock()
	log.LogWithFields(log.F("gif", path), log.F("duration", dur)).Info("Displaying GIF")
	return dur, true
}

// showKick handles a manual trigger while the cycle runs: the GIF is
// shown for the preview duration and the hide leg of the state
// machine takes over from there.
func (s *Scheduler) showKick(req kickRequest, timer *time.Timer) {
	if err := s.display.Show(req.path, s.overlayFor(req.path)); err != nil {
		log.LogWithFields(log.F("gif", req.path), log.F("error", err)).Warn("Manual display failed")
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	s.mu.Lock()
	s.state = types.StateShowing
	s.displayEnd = time.Now().Add(PreviewDuration)
	s.shown++
	s.lastShown = req.path
	s.mu.Unlock()
	timer.Reset(PreviewDuration)
}

// scheduleNext computes the next jittered interval, records the due
// time and resets the timer when one is given.
func (s *Scheduler) scheduleNext(timer *time.Timer) time.Duration {
	interval := s.nextInterval()

	s.mu.Lock()
	s.nextFire = time.Now().Add(interval)
	s.mu.Unlock()

	if timer != nil {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(interval)
	}
	log.Debugf("Next GIF scheduled in %s", interval)
	return interval
}

// nextInterval applies the jitter fraction to the configured interval.
func (s *Scheduler) nextInterval() time.Duration {
	o := s.opts()
	base := o.Interval
	if base <= 0 {
		base = time.Second
	}
	if o.Jitter <= 0 {
		return base
	}
	spread := (s.rng.Float64()*2 - 1) * o.Jitter // in [-jitter, +jitter)
	return base + time.Duration(spread*float64(base))
}

// pickDuration draws a display duration uniformly from
// [MinDisplay, MaxDisplay].
func (s *Scheduler) pickDuration() time.Duration {
	o := s.opts()
	min, max := o.MinDisplay, o.MaxDisplay
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Int63n(int64(max-min)+1))
}

func (s *Scheduler) overlayFor(path string) types.OverlayOptions {
	o := s.opts()
	if o.OverlayFor == nil {
		return types.OverlayOptions{}
	}
	return o.OverlayFor(path)
}

// LogDisplay is a Display that only logs, for headless frontends.
type LogDisplay struct{}

// Show logs the display request.
func (LogDisplay) Show(path string, opts types.OverlayOptions) error {
	log.LogWithFields(log.F("gif", path), log.F("position", string(opts.Position))).Info("Overlay shown")
	return nil
}

// Hide logs the hide request.
func (LogDisplay) Hide() {
	log.Debug("Overlay hidden")
}
