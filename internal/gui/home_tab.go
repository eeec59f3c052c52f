package gui

import (
	"fmt"
	"path/filepath"
	"time"

	"gifpal/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// createHomeTab creates the home tab with the companion status and
// the start/stop controls.
func (a *App) createHomeTab() fyne.CanvasObject {
	stateLabel := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	nextLabel := widget.NewLabel("")
	shownLabel := widget.NewLabel("")
	lastLabel := widget.NewLabel("")
	libraryLabel := widget.NewLabel("")

	var startStopButton *widget.Button

	updateStatus := func() {
		status := a.scheduler.Status()

		stateLabel.SetText("State: " + status.State.String())
		libraryLabel.SetText(fmt.Sprintf("Library: %d GIFs", status.LibrarySize))
		shownLabel.SetText(fmt.Sprintf("GIFs shown: %d", status.ShownCount))

		if status.LastShown != "" {
			lastLabel.SetText("Last shown: " + filepath.Base(status.LastShown))
		} else {
			lastLabel.SetText("Last shown: none yet")
		}

		switch status.State {
		case types.StateIdle:
			wait := time.Until(status.NextFire).Round(time.Second)
			if wait < 0 {
				wait = 0
			}
			nextLabel.SetText("Next GIF in: " + wait.String())
		case types.StateShowing:
			nextLabel.SetText("A GIF is on screen")
		default:
			nextLabel.SetText("Next GIF in: -")
		}

		if startStopButton != nil {
			if status.Running {
				startStopButton.SetText("Stop Companion")
				startStopButton.SetIcon(theme.MediaStopIcon())
			} else {
				startStopButton.SetText("Start Companion")
				startStopButton.SetIcon(theme.MediaPlayIcon())
			}
		}
	}

	startStopButton = widget.NewButtonWithIcon("Start Companion", theme.MediaPlayIcon(), func() {
		if a.scheduler.Running() {
			a.stopCompanion()
		} else {
			a.startCompanion()
		}
		updateStatus()
	})

	showNowButton := widget.NewButtonWithIcon("Show a GIF Now", theme.MediaPhotoIcon(), func() {
		if err := a.scheduler.TriggerNow(); err != nil {
			a.ShowError("Cannot show a GIF", err)
			return
		}
		updateStatus()
	})

	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		updateStatus()
	})

	updateStatus()
	a.statusRefresh = updateStatus

	statusCard := widget.NewCard("Companion Status", "", container.NewVBox(
		stateLabel,
		nextLabel,
		shownLabel,
		lastLabel,
		libraryLabel,
	))

	buttons := container.NewHBox(
		startStopButton,
		showNowButton,
		refreshButton,
	)

	help := widget.NewRichTextFromMarkdown("# gifpal\n\nYour desktop GIF companion.\n\n- **Start Companion** to get a random GIF from your library on a regular schedule\n- **Show a GIF Now** for an immediate preview\n- Add GIFs in the **Library** tab or find new ones in the **Search** tab")

	return container.NewBorder(
		nil,
		widget.NewCard("", "", help),
		nil,
		nil,
		container.NewVBox(statusCard, buttons),
	)
}
