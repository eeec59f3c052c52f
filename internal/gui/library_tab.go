package gui

import (
	"fmt"
	"path/filepath"

	"gifpal/internal/library"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// createLibraryTab creates the library management tab
func (a *App) createLibraryTab() fyne.CanvasObject {
	entries := a.library.Entries()

	countLabel := widget.NewLabel("")
	updateCount := func() {
		countLabel.SetText(fmt.Sprintf("%d GIFs in the library", len(entries)))
	}

	gifList := widget.NewList(
		func() int {
			return len(entries)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.MediaPhotoIcon()),
				widget.NewLabel("Template GIF name"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(entries) {
				return
			}

			entry := entries[id]
			icon := obj.(*fyne.Container).Objects[0].(*widget.Icon)
			label := obj.(*fyne.Container).Objects[1].(*widget.Label)

			// Flag files that disappeared or stopped decoding
			if entry.Valid {
				icon.SetResource(theme.MediaPhotoIcon())
			} else {
				icon.SetResource(theme.WarningIcon())
			}

			label.SetText(filepath.Base(entry.Path))
		},
	)

	refreshList := func() {
		entries = a.library.Entries()
		updateCount()
		gifList.Refresh()
	}
	refreshList()

	gifList.OnSelected = func(id widget.ListItemID) {
		a.selectedGifIndex = int(id)
	}
	gifList.OnUnselected = func(id widget.ListItemID) {
		if a.selectedGifIndex == int(id) {
			a.selectedGifIndex = -1
		}
	}

	selectedEntry := func() (library.Entry, bool) {
		if a.selectedGifIndex < 0 || a.selectedGifIndex >= len(entries) {
			return library.Entry{}, false
		}
		return entries[a.selectedGifIndex], true
	}

	addButton := widget.NewButtonWithIcon("Add GIF", theme.ContentAddIcon(), func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()

			if err := a.library.Add(path); err != nil {
				a.ShowError("Failed to add GIF", err)
				return
			}
			refreshList()
		}, a.mainWindow)
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".gif"}))
		fileDialog.Show()
	})

	addFolderButton := widget.NewButtonWithIcon("Add Folder", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
			if err != nil || list == nil {
				return
			}
			dir := list.Path()

			added, err := a.library.ScanDir(dir)
			if err != nil {
				a.ShowError("Failed to scan folder", err)
				return
			}
			refreshList()
			a.ShowNotification("Library", fmt.Sprintf("Added %d GIFs from %s", added, dir))
		}, a.mainWindow)
	})

	previewButton := widget.NewButtonWithIcon("Preview", theme.MediaPlayIcon(), func() {
		entry, ok := selectedEntry()
		if !ok {
			a.ShowInfo("Please select a GIF to preview.")
			return
		}
		a.overlayPreview(entry.Path)
	})

	removeButton := widget.NewButtonWithIcon("Remove", theme.DeleteIcon(), func() {
		entry, ok := selectedEntry()
		if !ok {
			a.ShowInfo("Please select a GIF to remove.")
			return
		}

		dialog.ShowConfirm("Remove GIF",
			"Remove "+filepath.Base(entry.Path)+" from the library?\nThe file itself is not deleted.",
			func(confirmed bool) {
				if !confirmed {
					return
				}
				a.library.Remove(entry.Path)
				a.selectedGifIndex = -1
				refreshList()
			},
			a.mainWindow)
	})

	cleanButton := widget.NewButtonWithIcon("Clean Missing", theme.ViewRefreshIcon(), func() {
		a.library.Paths()
		refreshList()
	})

	buttonContainer := container.NewHBox(
		addButton,
		addFolderButton,
		layout.NewSpacer(),
		previewButton,
		cleanButton,
		removeButton,
	)

	return container.NewBorder(
		widget.NewLabelWithStyle("Manage Your GIF Library", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewVBox(
			countLabel,
			buttonContainer,
		),
		nil,
		nil,
		container.NewScroll(gifList),
	)
}
