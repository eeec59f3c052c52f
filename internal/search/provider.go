// Package search implements the Giphy and Tenor GIF search providers
// and the download pipeline that feeds results into the library.
package search

import (
	"context"

	"gifpal/internal/errors"
)

// DefaultLimit is the number of results requested when the caller
// does not specify one.
const DefaultLimit = 20

// Result is one GIF returned by a provider. The JSON tags shape the
// CLI's --json output.
type Result struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`         // direct URL of the full-size GIF
	Preview  string `json:"preview_url"` // smaller variant for thumbnails
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Provider string `json:"source"`
}

// Provider searches a remote GIF service.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// New returns the named provider, keyed from creds.
func New(name string, creds Credentials) (Provider, error) {
	switch name {
	case "giphy":
		if creds.GiphyKey == "" {
			return nil, errors.NewSearchError("no API key configured", "giphy", errors.MissingCredentials, nil)
		}
		return NewGiphy(creds.GiphyKey), nil
	case "tenor":
		if creds.TenorKey == "" {
			return nil, errors.NewSearchError("no API key configured", "tenor", errors.MissingCredentials, nil)
		}
		return NewTenor(creds.TenorKey), nil
	default:
		return nil, errors.Newf("unknown search provider: %s", name)
	}
}
