package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gifpal/internal/config"
	"gifpal/internal/library"
	"gifpal/internal/schedule"
	"gifpal/internal/search"
	"gifpal/pkg/testutils"
)

func newTestModel(t *testing.T, gifs int) *Model {
	t.Helper()

	cfg := config.New()
	cfg.DownloadLocation = t.TempDir()
	guard := config.NewGuard(cfg)
	lib := library.NewManager(guard, nil)

	dir := t.TempDir()
	for i := 0; i < gifs; i++ {
		path := testutils.WriteTestGIF(t, dir, string(rune('a'+i))+".gif")
		require.NoError(t, lib.Add(path))
	}

	scheduler := schedule.New(lib, schedule.LogDisplay{}, schedule.FromConfig(guard))
	m := New(cfg, lib, scheduler, search.Credentials{})
	t.Cleanup(scheduler.Stop)
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitialization(t *testing.T) {
	m := newTestModel(t, 2)
	assert.NotNil(t, m)
	assert.Equal(t, modeLibrary, m.mode)
	assert.Len(t, m.Entries(), 2)
	assert.Equal(t, 0, m.Cursor())
}

func TestModelNavigation(t *testing.T) {
	t.Run("empty_library", func(t *testing.T) {
		m := newTestModel(t, 0)

		// Navigation in an empty library should not panic
		model, _ := m.Update(key("j"))
		assert.Equal(t, 0, model.(*Model).Cursor())
		model, _ = model.Update(key("k"))
		assert.Equal(t, 0, model.(*Model).Cursor())
	})

	t.Run("cursor_bounds", func(t *testing.T) {
		m := newTestModel(t, 3)

		m.Update(key("j"))
		m.Update(key("j"))
		assert.Equal(t, 2, m.Cursor())

		// Stuck at the bottom
		m.Update(key("j"))
		assert.Equal(t, 2, m.Cursor())

		m.Update(key("k"))
		assert.Equal(t, 1, m.Cursor())
	})
}

func TestModelStartStop(t *testing.T) {
	m := newTestModel(t, 1)

	m.Update(key("s"))
	assert.True(t, m.scheduler.Running())
	assert.Empty(t, m.errMsg)

	// Starting twice reports the error
	m.Update(key("s"))
	assert.NotEmpty(t, m.errMsg)

	m.Update(key("x"))
	assert.False(t, m.scheduler.Running())
}

func TestModelRemove(t *testing.T) {
	m := newTestModel(t, 2)

	m.Update(key("d"))
	assert.Len(t, m.Entries(), 1)
	assert.Equal(t, 1, m.lib.Len())
}

func TestModelSearchMode(t *testing.T) {
	m := newTestModel(t, 0)

	m.Update(key("/"))
	assert.Equal(t, modeSearchInput, m.mode)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeLibrary, m.mode)
}

func TestModelSearchResults(t *testing.T) {
	m := newTestModel(t, 0)

	results := []search.Result{
		{ID: "1", Title: "cat one", Provider: "giphy"},
		{ID: "2", Title: "cat two", Provider: "giphy"},
	}
	m.Update(searchResultsMsg{query: "cats", results: results})

	assert.Equal(t, modeResults, m.mode)
	assert.Len(t, m.results, 2)

	m.Update(key("j"))
	assert.Equal(t, 1, m.resultCursor)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeLibrary, m.mode)
	assert.Nil(t, m.results)
}

func TestModelSearchError(t *testing.T) {
	m := newTestModel(t, 0)

	m.Update(searchResultsMsg{query: "cats", err: assert.AnError})
	assert.Equal(t, modeLibrary, m.mode)
	assert.NotEmpty(t, m.errMsg)
}

func TestModelDownloadDone(t *testing.T) {
	m := newTestModel(t, 0)

	gifPath := testutils.WriteTestGIF(t, t.TempDir(), "new.gif")
	require.NoError(t, m.lib.Add(gifPath))

	m.Update(downloadDoneMsg{path: gifPath})
	assert.Len(t, m.Entries(), 1)
	assert.Contains(t, m.statusMsg, "new.gif")
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, 1)
	view := m.View()
	assert.Contains(t, view, "gifpal")
	assert.Contains(t, view, "a.gif")

	m.Update(key("/"))
	assert.Contains(t, m.View(), "search")
}
