package gui

import (
	"sync"

	"gifpal/internal/errors"
	"gifpal/internal/library"
	"gifpal/internal/log"
	"gifpal/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	xwidget "fyne.io/x/fyne/widget"
)

// Overlay renders GIFs in borderless splash windows. It implements
// the scheduler's Display interface; Show and Hide may be called from
// any goroutine.
type Overlay struct {
	app fyne.App

	mu   sync.Mutex
	win  fyne.Window
	anim *xwidget.AnimatedGif
}

// NewOverlay creates the overlay renderer.
func NewOverlay(app fyne.App) *Overlay {
	return &Overlay{app: app}
}

// Show displays the GIF at path, replacing any visible overlay. The
// GIF is scaled to the configured size before the window appears.
func (o *Overlay) Show(path string, opts types.OverlayOptions) error {
	width, height, err := library.Dimensions(path)
	if err != nil {
		return err
	}
	fitW, fitH := types.FitSize(width, height, opts.Size)

	var showErr error
	fyne.DoAndWait(func() {
		showErr = o.show(path, opts, fitW, fitH)
	})
	return showErr
}

// show runs on the UI thread.
func (o *Overlay) show(path string, opts types.OverlayOptions, fitW, fitH int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closeLocked()

	anim, err := xwidget.NewAnimatedGif(storage.NewFileURI(path))
	if err != nil {
		return errors.NewFileError("failed to load GIF", path, errors.InvalidGif, err)
	}
	anim.SetMinSize(fyne.NewSize(float32(fitW), float32(fitH)))

	var win fyne.Window
	if drv, ok := o.app.Driver().(desktop.Driver); ok {
		win = drv.CreateSplashWindow()
	} else {
		// Mobile and test drivers have no splash windows.
		win = o.app.NewWindow("gifpal overlay")
	}
	win.SetContent(anim)
	win.Resize(fyne.NewSize(float32(fitW), float32(fitH)))
	win.CenterOnScreen()

	anim.Start()
	win.Show()

	o.win = win
	o.anim = anim
	log.LogWithFields(log.F("gif", path), log.F("position", string(opts.Position))).Debug("Overlay window shown")
	return nil
}

// Hide closes the visible overlay window, if any.
func (o *Overlay) Hide() {
	fyne.Do(func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.closeLocked()
	})
}

// Visible reports whether an overlay window is currently shown.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.win != nil
}

func (o *Overlay) closeLocked() {
	if o.win == nil {
		return
	}
	o.anim.Stop()
	o.win.Close()
	o.win = nil
	o.anim = nil
}
