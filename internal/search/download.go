package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gifpal/internal/errors"
	"gifpal/internal/log"
)

const maxFilenameLen = 50

var downloadClient = &http.Client{Timeout: 60 * time.Second}

// SanitizeFilename turns an arbitrary GIF title into a safe filename
// fragment: filesystem-reserved characters become underscores, the
// result is capped at 50 characters and stripped of trailing dots and
// spaces. An empty result becomes "untitled".
func SanitizeFilename(title string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, title)

	// Cap on rune boundaries so a multi-byte title is never cut
	// mid-character.
	if runes := []rune(sanitized); len(runes) > maxFilenameLen {
		sanitized = string(runes[:maxFilenameLen])
	}
	sanitized = strings.Trim(sanitized, " .")
	if sanitized == "" {
		sanitized = "untitled"
	}
	return sanitized
}

// FilenameFor returns the library filename for a search result:
// <title>_<provider>_<id>.gif.
func FilenameFor(r Result) string {
	return fmt.Sprintf("%s_%s_%s.gif", SanitizeFilename(r.Title), r.Provider, r.ID)
}

// Download fetches a search result into dir and returns the saved
// path. A file that already exists is left untouched and reported as
// already present.
func Download(ctx context.Context, r Result, dir string) (path string, existed bool, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, errors.NewDownloadError("failed to create download directory", r.URL, errors.SaveFailed, err)
	}

	path = filepath.Join(dir, FilenameFor(r))
	if _, err := os.Stat(path); err == nil {
		log.Debugf("Skipping download, %s already exists", path)
		return path, true, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return "", false, errors.NewDownloadError("failed to build request", r.URL, errors.DownloadFailed, err)
	}

	resp, err := downloadClient.Do(req)
	if err != nil {
		return "", false, errors.NewDownloadError("request failed", r.URL, errors.DownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, errors.NewDownloadError(
			fmt.Sprintf("server returned status %d", resp.StatusCode), r.URL, errors.DownloadFailed, nil)
	}

	// Write to a temp file first so a failed download never leaves a
	// half-written GIF in the library directory.
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", false, errors.NewDownloadError("failed to create file", r.URL, errors.SaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", false, errors.NewDownloadError("failed to save GIF", r.URL, errors.SaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", false, errors.NewDownloadError("failed to save GIF", r.URL, errors.SaveFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", false, errors.NewDownloadError("failed to save GIF", r.URL, errors.SaveFailed, err)
	}

	log.LogWithFields(log.F("gif", path), log.F("provider", r.Provider)).Info("Downloaded GIF")
	return path, false, nil
}
