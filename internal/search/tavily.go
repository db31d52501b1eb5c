// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/content-crafter/internal/httputil"
	"github.com/pdiddy/content-crafter/pkg/types"
)

// tavilyURL is the Tavily search endpoint. Package-level var for test substitution.
var tavilyURL = "https://api.tavily.com/search"

// Tavily calls the Tavily search API.
type Tavily struct {
	APIKey string
	// Depth is Tavily's search_depth parameter: basic or advanced.
	Depth      string
	MaxResults int
	Client     *http.Client
}

// Name returns the provider identifier.
func (t *Tavily) Name() string { return "tavily" }

// Search posts a query to Tavily and returns the result contents as snippets.
func (t *Tavily) Search(ctx context.Context, query string) ([]types.Snippet, error) {
	if strings.TrimSpace(t.APIKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}
	depth := t.Depth
	if depth == "" {
		depth = "basic"
	}
	maxResults := t.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	payload, err := json.Marshal(map[string]any{
		"api_key":      t.APIKey,
		"query":        query,
		"search_depth": depth,
		"max_results":  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, clientOr(t.Client), req, 0)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding tavily response: %w", err)
	}

	snippets := make([]types.Snippet, 0, len(response.Results))
	for _, r := range response.Results {
		if strings.TrimSpace(r.Content) == "" {
			continue
		}
		snippets = append(snippets, types.Snippet{Text: r.Content, Title: r.Title, URL: r.URL, Source: "tavily"})
	}
	return truncate(snippets, maxResults), nil
}
