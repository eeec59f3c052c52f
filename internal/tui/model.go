// Package tui is the terminal frontend: it manages the library and
// the display cycle from a keyboard-driven interface. Overlays are
// only logged here; real windows need the GUI.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gifpal/internal/config"
	"gifpal/internal/library"
	"gifpal/internal/schedule"
	"gifpal/internal/search"
)

type mode int

const (
	modeLibrary mode = iota
	modeSearchInput
	modeResults
)

// Messages emitted by background commands
type searchResultsMsg struct {
	query   string
	results []search.Result
	err     error
}

type downloadDoneMsg struct {
	path    string
	existed bool
	err     error
}

type tickMsg time.Time

type Model struct {
	// Core state
	cfg       *config.Config
	lib       *library.Manager
	scheduler *schedule.Scheduler
	creds     search.Credentials

	mode     mode
	entries  []library.Entry
	cursor   int
	showHelp bool

	// Search state
	searchInput  textinput.Model
	results      []search.Result
	resultCursor int
	lastQuery    string

	statusMsg string
	errMsg    string
}

func New(cfg *config.Config, lib *library.Manager, scheduler *schedule.Scheduler, creds search.Credentials) *Model {
	input := textinput.New()
	input.Placeholder = "search for GIFs..."
	input.CharLimit = 100

	m := &Model{
		cfg:         cfg,
		lib:         lib,
		scheduler:   scheduler,
		creds:       creds,
		mode:        modeLibrary,
		searchInput: input,
	}
	m.reloadEntries()
	return m
}

func (m *Model) reloadEntries() {
	m.entries = m.lib.Entries()
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Entries exposes the listed library entries for tests.
func (m *Model) Entries() []library.Entry {
	return m.entries
}

// Cursor exposes the library cursor for tests.
func (m *Model) Cursor() int {
	return m.cursor
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tickMsg:
		// Periodic redraw so the countdown stays current
		return m, tickCmd()

	case searchResultsMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.mode = modeLibrary
			return m, nil
		}
		m.errMsg = ""
		m.results = msg.results
		m.resultCursor = 0
		m.lastQuery = msg.query
		m.mode = modeResults
		m.statusMsg = fmt.Sprintf("%d results for %q", len(msg.results), msg.query)
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		if msg.existed {
			m.statusMsg = "Already in the library: " + filepath.Base(msg.path)
		} else {
			m.statusMsg = "Added to the library: " + filepath.Base(msg.path)
		}
		m.reloadEntries()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearchInput:
		return m.handleSearchInputKeys(msg)
	case modeResults:
		return m.handleResultKeys(msg)
	default:
		return m.handleLibraryKeys(msg)
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.scheduler.Stop()
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "s":
		if err := m.scheduler.Start(); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
			m.statusMsg = "Companion started"
		}

	case "x":
		m.scheduler.Stop()
		m.statusMsg = "Companion stopped"

	case "t":
		if err := m.scheduler.TriggerNow(); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
			m.statusMsg = "Showing a random GIF"
		}

	case "p":
		if m.cursor < len(m.entries) {
			path := m.entries[m.cursor].Path
			if err := m.scheduler.ShowNow(path); err != nil {
				m.errMsg = err.Error()
			} else {
				m.errMsg = ""
				m.statusMsg = "Previewing " + filepath.Base(path)
			}
		}

	case "d":
		if m.cursor < len(m.entries) {
			path := m.entries[m.cursor].Path
			m.lib.Remove(path)
			m.statusMsg = "Removed " + filepath.Base(path)
			m.reloadEntries()
		}

	case "/":
		m.mode = modeSearchInput
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case "?":
		m.showHelp = !m.showHelp

	case "r":
		m.reloadEntries()
		m.statusMsg = "Library reloaded"
	}
	return m, nil
}

func (m *Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeLibrary
		m.searchInput.Blur()
		return m, nil

	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		if query == "" {
			m.mode = modeLibrary
			return m, nil
		}
		m.statusMsg = "Searching..."
		return m, m.searchCmd(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = modeLibrary
		m.results = nil

	case "j", "down":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}

	case "k", "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}

	case "enter", "d":
		if m.resultCursor < len(m.results) {
			m.statusMsg = "Downloading..."
			return m, m.downloadCmd(m.results[m.resultCursor])
		}
	}
	return m, nil
}

// searchCmd queries the configured provider off the update loop.
func (m *Model) searchCmd(query string) tea.Cmd {
	providerName := m.cfg.SearchProvider
	creds := m.creds
	return func() tea.Msg {
		provider, err := search.New(providerName, creds)
		if err != nil {
			return searchResultsMsg{query: query, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		results, err := provider.Search(ctx, query, search.DefaultLimit)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// downloadCmd fetches a result into the download directory and adds
// it to the library.
func (m *Model) downloadCmd(result search.Result) tea.Cmd {
	dir := m.cfg.DownloadLocation
	lib := m.lib
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		path, existed, err := search.Download(ctx, result, dir)
		if err == nil && !existed {
			err = lib.Add(path)
		}
		return downloadDoneMsg{path: path, existed: existed, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("gifpal"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeSearchInput:
		b.WriteString("Search " + m.cfg.SearchProvider + ":\n")
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("enter: search  esc: cancel"))

	case modeResults:
		b.WriteString(fmt.Sprintf("Results for %q:\n\n", m.lastQuery))
		for i, r := range m.results {
			title := r.Title
			if title == "" {
				title = r.ID
			}
			line := fmt.Sprintf("%s (%dx%d)", title, r.Width, r.Height)
			if i == m.resultCursor {
				b.WriteString(SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("j/k: move  enter: download  esc: back"))

	default:
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
		b.WriteString(m.renderLibrary())
		if m.showHelp {
			b.WriteString("\n")
			b.WriteString(HelpStyle.Render("j/k: move  s: start  x: stop  t: show random  p: preview  d: remove  /: search  r: reload  q: quit"))
		} else {
			b.WriteString("\n")
			b.WriteString(HelpStyle.Render("?: help  q: quit"))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render("Error: "+m.errMsg))
	} else if m.statusMsg != "" {
		b.WriteString("\n" + StatusStyle.Render(m.statusMsg))
	}

	return App.Render(b.String())
}

func (m *Model) renderStatus() string {
	status := m.scheduler.Status()
	if !status.Running {
		return StatusStyle.Render("Companion stopped")
	}
	wait := time.Until(status.NextFire).Round(time.Second)
	if wait < 0 {
		wait = 0
	}
	return SuccessStyle.Render(fmt.Sprintf("Companion running (%s, next GIF in %s)", status.State, wait))
}

func (m *Model) renderLibrary() string {
	if len(m.entries) == 0 {
		return StatusStyle.Render("The library is empty. Press / to search for GIFs.")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Library (%d GIFs):\n", len(m.entries)))
	for i, entry := range m.entries {
		name := filepath.Base(entry.Path)
		if !entry.Valid {
			name = InvalidStyle.Render(name + " (missing)")
		}
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	return b.String()
}
