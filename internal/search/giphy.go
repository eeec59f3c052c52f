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

const giphyBaseURL = "https://api.giphy.com/v1/gifs"

// Giphy searches the Giphy API.
type Giphy struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewGiphy creates a Giphy provider with the given API key.
func NewGiphy(key string) *Giphy {
	return &Giphy{
		key:     key,
		baseURL: giphyBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns "giphy".
func (g *Giphy) Name() string { return "giphy" }

// giphyImage dimensions come back as JSON strings.
type giphyImage struct {
	URL    string `json:"url"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

type giphyItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Images struct {
		Original   giphyImage `json:"original"`
		FixedWidth giphyImage `json:"fixed_width"`
	} `json:"images"`
}

type giphyResponse struct {
	Data []giphyItem `json:"data"`
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
}

// Search queries the Giphy search endpoint.
func (g *Giphy) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("api_key", g.key)
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("rating", "g")

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewSearchError("failed to build request", "giphy", errors.ProviderFailure, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.NewSearchError("request failed", "giphy", errors.ProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewSearchError("failed to read response", "giphy", errors.ProviderFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewSearchError(
			fmt.Sprintf("server returned status %d", resp.StatusCode), "giphy", errors.ProviderFailure, nil)
	}

	var parsed giphyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.NewSearchError("failed to parse response", "giphy", errors.MalformedResponse, err)
	}

	results := make([]Result, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		if item.Images.Original.URL == "" {
			continue
		}
		width, _ := strconv.Atoi(item.Images.Original.Width)
		height, _ := strconv.Atoi(item.Images.Original.Height)
		results = append(results, Result{
			ID:       item.ID,
			Title:    item.Title,
			URL:      item.Images.Original.URL,
			Preview:  item.Images.FixedWidth.URL,
			Width:    width,
			Height:   height,
			Provider: "giphy",
		})
	}
	log.LogWithFields(log.F("query", query), log.F("results", len(results))).Debug("Giphy search complete")
	return results, nil
}
