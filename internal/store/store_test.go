package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, m.Open())
	t.Cleanup(func() { m.Close() })
	return m
}

func TestStoreDownloads(t *testing.T) {
	m := openTestStore(t)

	require.NoError(t, m.RecordDownload("giphy", "abc", "Dancing Cat", "https://example.com/a.gif", "/gifs/a.gif"))
	require.NoError(t, m.RecordDownload("tenor", "def", "Excited Dog", "https://example.com/b.gif", "/gifs/b.gif"))

	has, err := m.HasDownload("giphy", "abc")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = m.HasDownload("giphy", "def")
	require.NoError(t, err)
	assert.False(t, has, "remote IDs are scoped per provider")

	downloads, err := m.RecentDownloads(10)
	require.NoError(t, err)
	require.Len(t, downloads, 2)
	assert.Equal(t, "Excited Dog", downloads[0].Title)

	downloads, err = m.RecentDownloads(1)
	require.NoError(t, err)
	assert.Len(t, downloads, 1)
}

func TestStoreSearches(t *testing.T) {
	m := openTestStore(t)

	require.NoError(t, m.RecordSearch("cats", "giphy", 20))
	require.NoError(t, m.RecordSearch("dogs", "tenor", 5))

	queries, err := m.RecentSearches(10)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, "dogs", queries[0].Term)
	assert.Equal(t, 5, queries[0].Results)
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	m := NewManager(path)
	require.NoError(t, m.Open())
	require.NoError(t, m.RecordDownload("giphy", "abc", "t", "u", "p"))
	require.NoError(t, m.Close())

	m = NewManager(path)
	require.NoError(t, m.Open())
	defer m.Close()

	has, err := m.HasDownload("giphy", "abc")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestStoreCloseIdempotent(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, m.Open())
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
