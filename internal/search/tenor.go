package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gifpal/internal/errors"
	"gifpal/internal/log"
)

const tenorBaseURL = "https://tenor.googleapis.com/v2"

// Tenor searches the Tenor v2 API.
type Tenor struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewTenor creates a Tenor provider with the given API key.
func NewTenor(key string) *Tenor {
	return &Tenor{
		key:     key,
		baseURL: tenorBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns "tenor".
func (t *Tenor) Name() string { return "tenor" }

type tenorMedia struct {
	URL  string `json:"url"`
	Dims [2]int `json:"dims"`
}

type tenorItem struct {
	ID           string `json:"id"`
	ContentDesc  string `json:"content_description"`
	MediaFormats struct {
		Gif     tenorMedia `json:"gif"`
		TinyGif tenorMedia `json:"tinygif"`
	} `json:"media_formats"`
}

type tenorResponse struct {
	Results []tenorItem `json:"results"`
}

// Search queries the Tenor search endpoint.
func (t *Tenor) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("key", t.key)
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("media_filter", "gif,tinygif")
	params.Set("contentfilter", "high")

	reqURL := fmt.Sprintf("%s/search?%s", t.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewSearchError("failed to build request", "tenor", errors.ProviderFailure, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.NewSearchError("request failed", "tenor", errors.ProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewSearchError("failed to read response", "tenor", errors.ProviderFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewSearchError(
			fmt.Sprintf("server returned status %d", resp.StatusCode), "tenor", errors.ProviderFailure, nil)
	}

	var parsed tenorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.NewSearchError("failed to parse response", "tenor", errors.MalformedResponse, err)
	}

	results := make([]Result, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		gif := item.MediaFormats.Gif
		if gif.URL == "" {
			continue
		}
		results = append(results, Result{
			ID:       item.ID,
			Title:    item.ContentDesc,
			URL:      gif.URL,
			Preview:  item.MediaFormats.TinyGif.URL,
			Width:    gif.Dims[0],
			Height:   gif.Dims[1],
			Provider: "tenor",
		})
	}
	log.LogWithFields(log.F("query", query), log.F("results", len(results))).Debug("Tenor search complete")
	return results, nil
}
