// Package gui implements the desktop application: the main window
// with its tabs, the system tray menu and the GIF overlay windows.
package gui

import (
	"gifpal/internal/config"
	"gifpal/internal/library"
	"gifpal/internal/log"
	"gifpal/internal/schedule"
	"gifpal/internal/search"
	"gifpal/internal/store"
	"gifpal/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window

	// cfg is read directly on the Fyne event loop; every write, and
	// every read from another goroutine, goes through guard.
	cfg     *config.Config
	guard   *config.Guard
	cfgPath string

	library   *library.Manager
	scheduler *schedule.Scheduler
	overlay   *Overlay
	watcher   *library.Watcher
	history   *store.Manager
	creds     search.Credentials

	statusUpdater func() // Function to update the system tray menu

	// Track selected items in lists
	selectedGifIndex      int // Index of the selected GIF in the library tab list
	selectedResultIndex   int // Index of the selected result in the search tab list
	selectedWatchDirIndex int // Index of the selected folder in the settings watch list

	statusRefresh func() // Refreshes the home tab status card
}

// NewApp creates a new GUI application. The scheduler is created here
// so that it drives real overlay windows.
func NewApp(cfg *config.Config, guard *config.Guard, cfgPath string, lib *library.Manager, history *store.Manager, creds search.Credentials) *App {
	fyneApp := app.NewWithID("io.github.gifpal")

	a := &App{
		fyneApp:               fyneApp,
		cfg:                   cfg,
		guard:                 guard,
		cfgPath:               cfgPath,
		library:               lib,
		history:               history,
		creds:                 creds,
		selectedGifIndex:      -1, // Initialize to -1 (no selection)
		selectedResultIndex:   -1,
		selectedWatchDirIndex: -1,
	}

	a.overlay = NewOverlay(fyneApp)
	a.scheduler = schedule.New(lib, a.overlay, schedule.FromConfig(guard))

	a.mainWindow = fyneApp.NewWindow("gifpal")
	a.setupSystemTray()

	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Scheduler returns the display scheduler driving the overlays.
func (a *App) Scheduler() *schedule.Scheduler {
	return a.scheduler
}

// setupSystemTray sets up the system tray icon and menu
func (a *App) setupSystemTray() {
	if deskApp, ok := a.fyneApp.(desktop.App); ok {
		var items []*fyne.MenuItem
		var updateMenuFunc func() []*fyne.MenuItem // Declare ahead

		// Function to create/update the menu items
		updateMenuFunc = func() []*fyne.MenuItem {
			items := []*fyne.MenuItem{
				fyne.NewMenuItem("Show gifpal", func() {
					a.mainWindow.Show()
				}),
				fyne.NewMenuItemSeparator(),
			}
			if a.scheduler.Running() {
				items = append(items, fyne.NewMenuItem("Stop Companion", func() {
					a.stopCompanion()
					// Update the menu immediately after action
					deskApp.SetSystemTrayMenu(fyne.NewMenu("gifpal", updateMenuFunc()...))
				}))
			} else {
				items = append(items, fyne.NewMenuItem("Start Companion", func() {
					a.startCompanion()
					// Update the menu immediately after action
					deskApp.SetSystemTrayMenu(fyne.NewMenu("gifpal", updateMenuFunc()...))
				}))
			}
			items = append(items, fyne.NewMenuItem("Show a GIF Now", func() {
				if err := a.scheduler.TriggerNow(); err != nil {
					a.ShowError("Cannot show a GIF", err)
				}
			}))
			items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Exit", func() {
				a.shutdown()
			}))
			return items
		}

		// Set the desktop tray menu
		items = updateMenuFunc()
		deskApp.SetSystemTrayMenu(fyne.NewMenu("gifpal", items...))

		// Store a reference to update status later if needed
		a.statusUpdater = func() {
			deskApp.SetSystemTrayMenu(fyne.NewMenu("gifpal", updateMenuFunc()...))
		}
	}
}

// Run starts the GUI application
func (a *App) Run() {
	a.setupMainWindow()
	a.startLibraryWatcher()

	if a.cfg.AutoStart {
		a.startCompanion()
	}

	a.mainWindow.Show()

	a.fyneApp.Run()
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	width, height := float32(700), float32(520)
	if a.cfg.LastWindowSize[0] > 0 && a.cfg.LastWindowSize[1] > 0 {
		width = float32(a.cfg.LastWindowSize[0])
		height = float32(a.cfg.LastWindowSize[1])
	}
	a.mainWindow.Resize(fyne.NewSize(width, height))

	// --- Tabs Setup ---
	tabs := container.NewAppTabs(
		container.NewTabItem("Home", a.createHomeTab()),
		container.NewTabItem("Library", a.createLibraryTab()),
		container.NewTabItem("Search", a.createSearchTab()),
		container.NewTabItem("Settings", a.createSettingsTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop) // Ensure tabs are at the top

	content := container.NewBorder(
		nil,
		// Status bar at bottom
		a.createStatusBar(),
		nil,  // No left content
		nil,  // No right content
		tabs, // Center content is the tabs
	)

	a.mainWindow.SetContent(content)

	// Closing the window hides to the tray; Exit lives in the tray menu.
	a.mainWindow.SetCloseIntercept(func() {
		a.rememberWindowSize()
		a.mainWindow.Hide()
	})
}

// createStatusBar creates a status bar to display app status information
func (a *App) createStatusBar() fyne.CanvasObject {
	companionStatus := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{})

	// Update status text based on scheduler state
	updateStatusText := func() {
		status := a.scheduler.Status()
		if status.Running {
			companionStatus.SetText("Companion: Running")
		} else {
			companionStatus.SetText("Companion: Stopped")
		}
	}

	// Initial update
	updateStatusText()

	// Create refresh button
	refreshButton := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		updateStatusText()
		a.refreshContent()
	})

	return container.NewHBox(
		companionStatus,
		layout.NewSpacer(),
		refreshButton,
	)
}

// refreshContent refreshes all dynamic content in the UI
func (a *App) refreshContent() {
	if a.statusRefresh != nil {
		a.statusRefresh()
	}
	a.mainWindow.Content().Refresh()
}

// startLibraryWatcher watches the library directories for GIFs added
// or removed outside the app.
func (a *App) startLibraryWatcher() {
	dirs := a.cfg.LibraryDirs()
	if len(dirs) == 0 {
		return
	}

	watcher, err := library.NewWatcher()
	if err != nil {
		log.Errorf("Failed to create library watcher: %v", err)
		// Don't exit - GUI can still be used without the watcher
		return
	}

	for _, dir := range dirs {
		if err := watcher.AddDirectory(dir); err != nil {
			log.Warnf("Not watching %s: %v", dir, err)
		}
	}
	if len(watcher.Directories()) == 0 {
		watcher.Stop()
		return
	}

	if err := watcher.Start(); err != nil {
		log.Errorf("Failed to start library watcher: %v", err)
		return
	}
	a.watcher = watcher

	go func() {
		for change := range watcher.Changes() {
			library.Apply(a.library, change)
		}
	}()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	dialog.ShowError(err, a.mainWindow)
	a.ShowNotification("Error: "+title, err.Error())
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}

// ShowNotification displays a system notification
func (a *App) ShowNotification(title, content string) {
	a.fyneApp.SendNotification(fyne.NewNotification(title, content))
}

// startCompanion starts the display cycle
func (a *App) startCompanion() {
	if err := a.scheduler.Start(); err != nil {
		a.ShowError("Failed to start the companion", err)
		return
	}
	if a.library.Len() == 0 {
		a.ShowNotification("gifpal", "The library is empty; add some GIFs to see overlays")
	} else {
		a.ShowNotification("gifpal", "Companion started")
	}
	if a.statusUpdater != nil {
		a.statusUpdater()
	}
	a.refreshContent()
}

// stopCompanion stops the display cycle
func (a *App) stopCompanion() {
	if !a.scheduler.Running() {
		return
	}

	a.scheduler.Stop()
	a.ShowNotification("gifpal", "Companion stopped")
	if a.statusUpdater != nil {
		a.statusUpdater()
	}
	a.refreshContent()
}

// shutdown stops everything and quits the application.
func (a *App) shutdown() {
	a.rememberWindowSize()
	a.scheduler.Stop()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			log.Warnf("Failed to close history database: %v", err)
		}
	}
	a.fyneApp.Quit()
}

// rememberWindowSize persists the main window size for the next run.
func (a *App) rememberWindowSize() {
	size := a.mainWindow.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		a.guard.Update(func(cfg *config.Config) {
			cfg.LastWindowSize = [2]int{int(size.Width), int(size.Height)}
		})
		a.saveConfig()
	}
}

// updateConfig applies a settings change under the config write lock
// so the scheduler and the library never observe a torn write.
func (a *App) updateConfig(fn func(*config.Config)) {
	a.guard.Update(fn)
}

// saveConfig saves the current configuration
func (a *App) saveConfig() {
	var err error
	a.guard.View(func(cfg *config.Config) {
		err = config.SaveConfig(cfg, a.cfgPath)
	})
	if err != nil {
		a.ShowError("Failed to save configuration", err)
	}
}

// overlayPreview shows the given GIF immediately using the preview
// duration.
func (a *App) overlayPreview(path string) {
	if err := a.scheduler.ShowNow(path); err != nil {
		a.ShowError("Failed to preview GIF", err)
	}
}

// positionNames lists the overlay positions for select widgets.
func positionNames() []string {
	return types.Positions()
}
