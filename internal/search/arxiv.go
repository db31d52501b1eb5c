// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/content-crafter/internal/httputil"
	"github.com/pdiddy/content-crafter/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Arxiv turns arXiv paper abstracts into snippets.
type Arxiv struct {
	MaxResults int
	UserAgent  string
	Client     *http.Client
}

// Name returns the provider identifier.
func (a *Arxiv) Name() string { return "arxiv" }

// Search queries the arXiv API. Query terms are OR-ed so that arXiv's
// relevance ranking, not exact phrase matching, decides the results.
func (a *Arxiv) Search(ctx context.Context, query string) ([]types.Snippet, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	maxResults := a.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	endpoint := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, q, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if a.UserAgent != "" {
		req.Header.Set("User-Agent", a.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, clientOr(a.Client), req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var snippets []types.Snippet
	for _, entry := range feed.Entries {
		summary := strings.Join(strings.Fields(entry.Summary), " ")
		if summary == "" {
			continue
		}
		snippets = append(snippets, types.Snippet{
			Text:   summary,
			Title:  strings.Join(strings.Fields(entry.Title), " "),
			URL:    strings.TrimSpace(entry.ID),
			Source: "arxiv",
		})
	}
	return truncate(snippets, maxResults), nil
}

// buildArxivQuery constructs the search_query parameter: each term becomes
// an all: clause and the clauses are OR-ed.
func buildArxivQuery(query string) string {
	var parts []string
	for _, term := range strings.Fields(query) {
		term = strings.Trim(term, `:;,."'()`)
		if len(term) < 3 {
			continue
		}
		parts = append(parts, "all:"+url.QueryEscape(term))
	}
	return strings.Join(parts, "+OR+")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}
