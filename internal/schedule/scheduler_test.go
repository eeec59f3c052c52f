package schedule

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gifpal/internal/config"
	"gifpal/pkg/types"
)

type fakeDisplay struct {
	mu      sync.Mutex
	shows   []string
	hides   int
	failFor string
	showCh  chan string
	hideCh  chan struct{}
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		showCh: make(chan string, 16),
		hideCh: make(chan struct{}, 16),
	}
}

func (d *fakeDisplay) Show(path string, opts types.OverlayOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if path == d.failFor {
		return fmt.Errorf("cannot load %s", path)
	}
	d.shows = append(d.shows, path)
	d.showCh <- path
	return nil
}

func (d *fakeDisplay) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hides++
	d.hideCh <- struct{}{}
}

func (d *fakeDisplay) showCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shows)
}

func (d *fakeDisplay) hideCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hides
}

type stubPicker struct {
	mu      sync.Mutex
	paths   []string
	removed []string
}

func (p *stubPicker) Random() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.paths) == 0 {
		return "", false
	}
	return p.paths[0], true
}

func (p *stubPicker) Remove(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removed = append(p.removed, path)
	kept := p.paths[:0]
	for _, c := range p.paths {
		if c != path {
			kept = append(kept, c)
		}
	}
	p.paths = kept
}

func (p *stubPicker) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paths)
}

func (p *stubPicker) removedPaths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.removed...)
}

func fixedOptions(interval, minShow, maxShow time.Duration) func() Options {
	return func() Options {
		return Options{
			Interval:   interval,
			MinDisplay: minShow,
			MaxDisplay: maxShow,
			Jitter:     0,
			OverlayFor: func(string) types.OverlayOptions {
				return types.OverlayOptions{Position: types.PositionCenter}
			},
		}
	}
}

func waitShow(t *testing.T, d *fakeDisplay) string {
	t.Helper()
	select {
	case path := <-d.showCh:
		return path
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a GIF to be shown")
		return ""
	}
}

func waitHide(t *testing.T, d *fakeDisplay) {
	t.Helper()
	select {
	case <-d.hideCh:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the overlay to be hidden")
	}
}

func TestSchedulerCycle(t *testing.T) {
	display := newFakeDisplay()
	lib := &stubPicker{paths: []string{"/gifs/cat.gif"}}
	s := New(lib, display, fixedOptions(30*time.Millisecond, 200*time.Millisecond, 200*time.Millisecond))

	require.NoError(t, s.Start())
	defer s.Stop()

	path := waitShow(t, display)
	assert.Equal(t, "/gifs/cat.gif", path)

	require.Eventually(t, func() bool {
		return s.Status().State == types.StateShowing
	}, time.Second, 5*time.Millisecond)

	status := s.Status()
	assert.True(t, status.Running)
	assert.Equal(t, "/gifs/cat.gif", status.LastShown)
	assert.Equal(t, 1, status.LibrarySize)

	waitHide(t, display)
	waitShow(t, display)

	assert.GreaterOrEqual(t, s.Status().ShownCount, 2)
}

func TestSchedulerStartTwice(t *testing.T) {
	s := New(&stubPicker{}, newFakeDisplay(), fixedOptions(time.Hour, time.Second, time.Second))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.Start())
}

func TestSchedulerStopHidesOverlay(t *testing.T) {
	display := newFakeDisplay()
	lib := &stubPicker{paths: []string{"/gifs/dog.gif"}}
	s := New(lib, display, fixedOptions(10*time.Millisecond, time.Hour, time.Hour))

	require.NoError(t, s.Start())
	waitShow(t, display)

	s.Stop()

	assert.False(t, s.Running())
	assert.Equal(t, types.StateStopped, s.Status().State)
	assert.GreaterOrEqual(t, display.hideCount(), 1)

	shown := display.showCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, shown, display.showCount(), "no GIF may appear after Stop")

	// Stopping again is a no-op.
	s.Stop()
}

func TestSchedulerEmptyLibrarySkips(t *testing.T) {
	display := newFakeDisplay()
	s := New(&stubPicker{}, display, fixedOptions(10*time.Millisecond, time.Second, time.Second))

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, display.showCount())
	assert.True(t, s.Running(), "an empty library must not stop the cycle")
}

func TestSchedulerPrunesFailedShow(t *testing.T) {
	display := newFakeDisplay()
	display.failFor = "/gifs/broken.gif"
	lib := &stubPicker{paths: []string{"/gifs/broken.gif"}}
	s := New(lib, display, fixedOptions(10*time.Millisecond, time.Second, time.Second))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		removed := lib.removedPaths()
		return len(removed) == 1 && removed[0] == "/gifs/broken.gif"
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, lib.Len())
}

func TestShowNowWhileStopped(t *testing.T) {
	display := newFakeDisplay()
	lib := &stubPicker{paths: []string{"/gifs/cat.gif"}}
	s := New(lib, display, fixedOptions(time.Hour, time.Second, time.Second))

	require.NoError(t, s.ShowNow("/gifs/cat.gif"))
	assert.Equal(t, "/gifs/cat.gif", waitShow(t, display))
	assert.Equal(t, "/gifs/cat.gif", s.Status().LastShown)

	// Stop cancels the preview and hides the overlay even though the
	// cycle never ran.
	s.Stop()
	assert.GreaterOrEqual(t, display.hideCount(), 1)
}

func TestTriggerNowEmptyLibrary(t *testing.T) {
	s := New(&stubPicker{}, newFakeDisplay(), fixedOptions(time.Hour, time.Second, time.Second))
	assert.Error(t, s.TriggerNow())
}

func TestTriggerNowWhileRunning(t *testing.T) {
	display := newFakeDisplay()
	lib := &stubPicker{paths: []string{"/gifs/cat.gif"}}
	s := New(lib, display, fixedOptions(time.Hour, time.Second, time.Second))

	require.NoError(t, s.Start())
	defer s.Stop()

	require.NoError(t, s.TriggerNow())
	assert.Equal(t, "/gifs/cat.gif", waitShow(t, display))
	assert.Eventually(t, func() bool {
		return s.Status().State == types.StateShowing
	}, time.Second, 5*time.Millisecond)
}

func TestFromConfigConcurrentSettingsChange(t *testing.T) {
	cfg := config.New()
	cfg.DisplayInterval = 1
	cfg.MinDisplayTime = 1
	cfg.MaxDisplayTime = 1
	guard := config.NewGuard(cfg)

	display := newFakeDisplay()
	picker := &stubPicker{paths: []string{"/gifs/live.gif"}}
	s := New(picker, display, FromConfig(guard))
	require.NoError(t, s.Start())

	// Change settings the way the settings tab does while the cycle
	// is reading them. Run with -race to catch unguarded access.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			guard.Update(func(c *config.Config) {
				c.DisplayInterval = 1 + i%5
				c.GifSize = 100 + i
			})
			time.Sleep(time.Millisecond)
		}
	}()

	require.NoError(t, s.TriggerNow())
	waitShow(t, display)
	<-done
	s.Stop()

	var interval time.Duration
	guard.View(func(c *config.Config) { interval = c.Interval() })
	assert.Equal(t, interval, FromConfig(guard)().Interval)
}

func TestNextIntervalJitter(t *testing.T) {
	base := 100 * time.Millisecond
	s := New(&stubPicker{}, newFakeDisplay(), func() Options {
		return Options{Interval: base, Jitter: DefaultJitter}
	})

	lo := time.Duration(float64(base) * (1 - DefaultJitter))
	hi := time.Duration(float64(base) * (1 + DefaultJitter))
	for i := 0; i < 100; i++ {
		got := s.nextInterval()
		assert.GreaterOrEqual(t, got, lo)
		assert.LessOrEqual(t, got, hi)
	}
}

func TestPickDuration(t *testing.T) {
	s := New(&stubPicker{}, newFakeDisplay(), fixedOptions(time.Hour, 5*time.Second, 10*time.Second))

	for i := 0; i < 100; i++ {
		d := s.pickDuration()
		assert.GreaterOrEqual(t, d, 5*time.Second)
		assert.LessOrEqual(t, d, 10*time.Second)
	}

	s.opts = fixedOptions(time.Hour, 7*time.Second, 7*time.Second)
	assert.Equal(t, 7*time.Second, s.pickDuration())
}
