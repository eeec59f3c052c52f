package errors_test

import (
	stderrors "errors"
	"testing"

	"gifpal/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestFileError(t *testing.T) {
	err := errors.NewFileError("file not found", "/tmp/missing.gif", errors.FileNotFound, nil)

	assert.Equal(t, "file not found: /tmp/missing.gif", err.Error())
	assert.Equal(t, "/tmp/missing.gif", err.Path())
	assert.Equal(t, errors.FileNotFound, err.Kind())
	assert.True(t, errors.IsFileNotFound(err))
	assert.False(t, errors.IsInvalidGif(err))
}

func TestInvalidGifError(t *testing.T) {
	inner := stderrors.New("gif: can't recognize format")
	err := errors.NewFileError("not a valid GIF file", "/tmp/notagif.gif", errors.InvalidGif, inner)

	assert.Contains(t, err.Error(), "/tmp/notagif.gif")
	assert.Contains(t, err.Error(), "can't recognize format")
	assert.True(t, errors.IsInvalidGif(err))
	assert.ErrorIs(t, err, inner)
}

func TestConfigError(t *testing.T) {
	err := errors.NewConfigError("invalid configuration", "display_interval", errors.InvalidConfig, nil)

	assert.Equal(t, "invalid configuration: display_interval", err.Error())
	assert.Equal(t, "display_interval", err.Param())
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestSearchError(t *testing.T) {
	inner := stderrors.New("status 500")
	err := errors.NewSearchError("search request failed", "giphy", errors.ProviderFailure, inner)

	assert.Contains(t, err.Error(), "giphy")
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, "giphy", err.Provider())
	assert.True(t, errors.IsSearchError(err))
	assert.False(t, errors.IsMissingCredentials(err))

	noKey := errors.NewSearchError("API key not configured", "tenor", errors.MissingCredentials, nil)
	assert.True(t, errors.IsMissingCredentials(noKey))
}

func TestDownloadError(t *testing.T) {
	err := errors.NewDownloadError("download failed", "https://example.com/a.gif", errors.DownloadFailed, nil)

	assert.Contains(t, err.Error(), "https://example.com/a.gif")
	assert.Equal(t, "https://example.com/a.gif", err.URL())
	assert.True(t, errors.IsDownloadError(err))
	assert.False(t, errors.IsSearchError(err))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "context"))

	inner := stderrors.New("boom")
	wrapped := errors.Wrap(inner, "loading library")
	assert.Equal(t, "loading library: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, inner)

	wrappedf := errors.Wrapf(inner, "loading %s", "library")
	assert.Equal(t, "loading library: boom", wrappedf.Error())
}

func TestNew(t *testing.T) {
	err := errors.New("plain")
	assert.Equal(t, "plain", err.Error())

	err = errors.Newf("formatted %d", 7)
	assert.Equal(t, "formatted 7", err.Error())
}
