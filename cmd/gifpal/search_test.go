package main

import (
	"encoding/json"
	"testing"

	"gifpal/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmdFlags(t *testing.T) {
	cmd := searchCmd()
	for _, name := range []string{"source", "limit", "download", "json"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s flag", name)
	}
}

func TestSearchResultJSONShape(t *testing.T) {
	r := search.Result{
		ID:       "abc123",
		Title:    "Dancing Cat",
		URL:      "https://media.giphy.com/abc123/giphy.gif",
		Preview:  "https://media.giphy.com/abc123/200w.gif",
		Width:    480,
		Height:   270,
		Provider: "giphy",
	}

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "abc123",
		"title": "Dancing Cat",
		"url": "https://media.giphy.com/abc123/giphy.gif",
		"preview_url": "https://media.giphy.com/abc123/200w.gif",
		"width": 480,
		"height": 270,
		"source": "giphy"
	}`, string(out))
}
