package gui

import (
	"fmt"
	"strconv"

	"gifpal/internal/config"
	"gifpal/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// createSettingsTab creates the settings tab
func (a *App) createSettingsTab() fyne.CanvasObject {
	// --- Schedule Settings ---
	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(strconv.Itoa(a.cfg.DisplayInterval))
	intervalEntry.OnChanged = func(value string) {
		if n, err := strconv.Atoi(value); err == nil && n >= 1 {
			a.updateConfig(func(cfg *config.Config) { cfg.DisplayInterval = n })
		}
	}

	minEntry := widget.NewEntry()
	minEntry.SetText(strconv.Itoa(a.cfg.MinDisplayTime))
	minEntry.OnChanged = func(value string) {
		if n, err := strconv.Atoi(value); err == nil && n >= 1 {
			a.updateConfig(func(cfg *config.Config) { cfg.MinDisplayTime = n })
		}
	}

	maxEntry := widget.NewEntry()
	maxEntry.SetText(strconv.Itoa(a.cfg.MaxDisplayTime))
	maxEntry.OnChanged = func(value string) {
		if n, err := strconv.Atoi(value); err == nil && n >= 1 {
			a.updateConfig(func(cfg *config.Config) { cfg.MaxDisplayTime = n })
		}
	}

	autoStartCheck := widget.NewCheck("Start the companion when the app opens", func(value bool) {
		a.updateConfig(func(cfg *config.Config) { cfg.AutoStart = value })
	})
	autoStartCheck.SetChecked(a.cfg.AutoStart)

	scheduleForm := widget.NewForm(
		widget.NewFormItem("Interval (seconds)", intervalEntry),
		widget.NewFormItem("Min display (seconds)", minEntry),
		widget.NewFormItem("Max display (seconds)", maxEntry),
	)

	// --- Appearance Settings ---
	sizeLabel := widget.NewLabel(fmt.Sprintf("GIF size: %d px", a.cfg.GifSize))
	sizeSlider := widget.NewSlider(types.MinOverlaySize, types.MaxOverlaySize)
	sizeSlider.Step = 10
	sizeSlider.SetValue(float64(a.cfg.GifSize))
	sizeSlider.OnChanged = func(value float64) {
		a.updateConfig(func(cfg *config.Config) { cfg.GifSize = int(value) })
		sizeLabel.SetText(fmt.Sprintf("GIF size: %d px", int(value)))
	}

	opacityLabel := widget.NewLabel(fmt.Sprintf("Opacity: %.0f%%", a.cfg.Opacity*100))
	opacitySlider := widget.NewSlider(0.1, 1.0)
	opacitySlider.Step = 0.05
	opacitySlider.SetValue(a.cfg.Opacity)
	opacitySlider.OnChanged = func(value float64) {
		a.updateConfig(func(cfg *config.Config) { cfg.Opacity = value })
		opacityLabel.SetText(fmt.Sprintf("Opacity: %.0f%%", value*100))
	}

	positionSelect := widget.NewSelect(positionNames(), func(value string) {
		a.updateConfig(func(cfg *config.Config) { cfg.Position = value })
	})
	positionSelect.SetSelected(a.cfg.Position)

	onTopCheck := widget.NewCheck("Keep overlays above other windows", func(value bool) {
		a.updateConfig(func(cfg *config.Config) { cfg.AlwaysOnTop = value })
	})
	onTopCheck.SetChecked(a.cfg.AlwaysOnTop)

	clickThroughCheck := widget.NewCheck("Let clicks pass through overlays", func(value bool) {
		a.updateConfig(func(cfg *config.Config) { cfg.ClickThrough = value })
	})
	clickThroughCheck.SetChecked(a.cfg.ClickThrough)

	persistCheck := widget.NewCheck("Remember per-GIF positions", func(value bool) {
		a.updateConfig(func(cfg *config.Config) { cfg.PositionPersistence = value })
	})
	persistCheck.SetChecked(a.cfg.PositionPersistence)

	// --- Library Settings ---
	downloadEntry := widget.NewEntry()
	downloadEntry.SetText(a.cfg.DownloadLocation)
	downloadEntry.OnChanged = func(value string) {
		a.updateConfig(func(cfg *config.Config) { cfg.DownloadLocation = value })
	}
	downloadBrowse := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
			if err != nil || list == nil {
				return
			}
			downloadEntry.SetText(list.Path())
		}, a.mainWindow)
	})

	// Watched folders list
	watchList := widget.NewList(
		func() int {
			return len(a.cfg.WatchLibraryDirs)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Template watched folder")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(a.cfg.WatchLibraryDirs) {
				return
			}
			obj.(*widget.Label).SetText(a.cfg.WatchLibraryDirs[id])
		},
	)
	watchList.OnSelected = func(id widget.ListItemID) {
		a.selectedWatchDirIndex = int(id)
	}
	watchList.OnUnselected = func(id widget.ListItemID) {
		if a.selectedWatchDirIndex == int(id) {
			a.selectedWatchDirIndex = -1
		}
	}

	addWatchButton := widget.NewButtonWithIcon("Add Folder", theme.ContentAddIcon(), func() {
		dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
			if err != nil || list == nil {
				return
			}
			dir := list.Path()
			for _, existing := range a.cfg.WatchLibraryDirs {
				if existing == dir {
					return
				}
			}
			a.updateConfig(func(cfg *config.Config) {
				cfg.WatchLibraryDirs = append(cfg.WatchLibraryDirs, dir)
			})
			watchList.Refresh()
		}, a.mainWindow)
	})

	removeWatchButton := widget.NewButtonWithIcon("Remove", theme.DeleteIcon(), func() {
		i := a.selectedWatchDirIndex
		if i < 0 || i >= len(a.cfg.WatchLibraryDirs) {
			a.ShowInfo("Please select a folder to remove.")
			return
		}
		a.updateConfig(func(cfg *config.Config) {
			cfg.WatchLibraryDirs = append(cfg.WatchLibraryDirs[:i], cfg.WatchLibraryDirs[i+1:]...)
		})
		a.selectedWatchDirIndex = -1
		watchList.Refresh()
	})

	// --- Save / Import / Export ---
	saveButton := widget.NewButtonWithIcon("Save Settings", theme.DocumentSaveIcon(), func() {
		if err := a.cfg.Validate(); err != nil {
			a.ShowError("Invalid settings", err)
			return
		}
		a.saveConfig()
		a.ShowNotification("gifpal", "Settings saved")
	})

	importButton := widget.NewButtonWithIcon("Import", theme.UploadIcon(), func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()

			imported, err := parseImportedConfig(reader)
			if err != nil {
				a.ShowError("Failed to import settings", err)
				return
			}

			// Replace the record under the write lock so the library
			// manager and the scheduler never see a half-copied config.
			a.updateConfig(func(cfg *config.Config) { *cfg = *imported })
			a.saveConfig()
			a.ShowInfo("Settings imported. Reopen the Settings tab to see the new values.")
		}, a.mainWindow)
	})

	exportButton := widget.NewButtonWithIcon("Export", theme.DownloadIcon(), func() {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()

			var exportErr error
			a.guard.View(func(cfg *config.Config) {
				exportErr = exportConfig(cfg, writer)
			})
			if exportErr != nil {
				a.ShowError("Failed to export settings", exportErr)
			}
		}, a.mainWindow)
	})

	scheduleCard := widget.NewCard("Schedule", "", container.NewVBox(
		scheduleForm,
		autoStartCheck,
	))

	appearanceCard := widget.NewCard("Appearance", "", container.NewVBox(
		sizeLabel,
		sizeSlider,
		opacityLabel,
		opacitySlider,
		widget.NewForm(widget.NewFormItem("Position", positionSelect)),
		onTopCheck,
		clickThroughCheck,
		persistCheck,
	))

	watchListBox := container.NewVScroll(watchList)
	watchListBox.SetMinSize(fyne.NewSize(0, 120))

	libraryCard := widget.NewCard("Library", "", container.NewVBox(
		widget.NewForm(widget.NewFormItem("Download folder",
			container.NewBorder(nil, nil, nil, downloadBrowse, downloadEntry))),
		widget.NewLabel("Watched folders (changes there update the library):"),
		watchListBox,
		container.NewHBox(addWatchButton, removeWatchButton),
	))

	buttons := container.NewHBox(
		saveButton,
		importButton,
		exportButton,
	)

	return container.NewScroll(container.NewVBox(
		scheduleCard,
		appearanceCard,
		libraryCard,
		buttons,
	))
}
