package gui

import (
	"context"
	"fmt"
	"time"

	"gifpal/internal/config"
	"gifpal/internal/log"
	"gifpal/internal/search"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// createSearchTab creates the web search tab
func (a *App) createSearchTab() fyne.CanvasObject {
	var results []search.Result
	var searchGen int // Drops stale responses when searches overlap

	statusLabel := widget.NewLabel("Enter a search to find GIFs")

	resultList := widget.NewList(
		func() int {
			return len(results)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.MediaPhotoIcon()),
				widget.NewLabel("Template result title"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(results) {
				return
			}
			result := results[id]
			label := obj.(*fyne.Container).Objects[1].(*widget.Label)

			title := result.Title
			if title == "" {
				title = result.ID
			}
			label.SetText(fmt.Sprintf("%s (%dx%d)", title, result.Width, result.Height))
		},
	)

	resultList.OnSelected = func(id widget.ListItemID) {
		a.selectedResultIndex = int(id)
	}
	resultList.OnUnselected = func(id widget.ListItemID) {
		if a.selectedResultIndex == int(id) {
			a.selectedResultIndex = -1
		}
	}

	providerSelect := widget.NewSelect([]string{"giphy", "tenor"}, func(value string) {
		a.updateConfig(func(cfg *config.Config) { cfg.SearchProvider = value })
	})
	providerSelect.SetSelected(a.cfg.SearchProvider)

	queryEntry := widget.NewEntry()
	queryEntry.SetPlaceHolder("Search for GIFs...")

	runSearch := func() {
		query := queryEntry.Text
		if query == "" {
			return
		}

		provider, err := search.New(a.cfg.SearchProvider, a.creds)
		if err != nil {
			a.ShowError("Search unavailable", err)
			return
		}

		searchGen++
		gen := searchGen
		statusLabel.SetText("Searching...")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			found, err := provider.Search(ctx, query, search.DefaultLimit)

			fyne.Do(func() {
				if gen != searchGen {
					return // A newer search replaced this one
				}
				if err != nil {
					statusLabel.SetText("Search failed")
					a.ShowError("Search failed", err)
					return
				}

				results = found
				a.selectedResultIndex = -1
				resultList.UnselectAll()
				resultList.Refresh()
				statusLabel.SetText(fmt.Sprintf("%d results for %q", len(results), query))
			})

			if err == nil && a.history != nil {
				if err := a.history.RecordSearch(query, provider.Name(), len(found)); err != nil {
					log.Warnf("Failed to record search history: %v", err)
				}
			}
		}()
	}

	queryEntry.OnSubmitted = func(string) { runSearch() }
	searchButton := widget.NewButtonWithIcon("Search", theme.SearchIcon(), runSearch)

	downloadButton := widget.NewButtonWithIcon("Download to Library", theme.DownloadIcon(), func() {
		if a.selectedResultIndex < 0 || a.selectedResultIndex >= len(results) {
			a.ShowInfo("Please select a GIF to download.")
			return
		}
		result := results[a.selectedResultIndex]
		downloadDir := a.cfg.DownloadLocation
		statusLabel.SetText("Downloading...")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			path, existed, err := search.Download(ctx, result, downloadDir)
			if err == nil && !existed {
				err = a.library.Add(path)
			}

			if err == nil && !existed && a.history != nil {
				if hErr := a.history.RecordDownload(result.Provider, result.ID, result.Title, result.URL, path); hErr != nil {
					log.Warnf("Failed to record download history: %v", hErr)
				}
			}

			fyne.Do(func() {
				if err != nil {
					statusLabel.SetText("Download failed")
					a.ShowError("Download failed", err)
					return
				}
				if existed {
					statusLabel.SetText("Already in your library")
					return
				}
				statusLabel.SetText("Added to your library")
				a.ShowNotification("gifpal", "GIF added to your library")
			})
		}()
	})

	searchBar := container.NewBorder(
		nil, nil,
		providerSelect,
		searchButton,
		queryEntry,
	)

	bottomBar := container.NewHBox(
		statusLabel,
		layout.NewSpacer(),
		downloadButton,
	)

	return container.NewBorder(
		searchBar,
		bottomBar,
		nil,
		nil,
		container.NewScroll(resultList),
	)
}
