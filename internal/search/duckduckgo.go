// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/content-crafter/internal/httputil"
	"github.com/pdiddy/content-crafter/pkg/types"
)

// ddgEndpoint is the DuckDuckGo lite HTML endpoint. Package-level var for
// test substitution.
var ddgEndpoint = "https://lite.duckduckgo.com/lite/"

const ddgUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	// ddgLinkPattern matches result links: <a ... class='result-link' ... href="URL">TITLE</a>,
	// with class and href in either order.
	ddgLinkPattern = regexp.MustCompile(`<a[^>]*(?:class=['"]result-link['"][^>]*href=['"]([^'"]+)['"]|href=['"]([^'"]+)['"][^>]*class=['"]result-link['"])[^>]*>([^<]+)</a>`)

	// ddgSnippetPattern matches <td class="result-snippet">...</td>.
	ddgSnippetPattern = regexp.MustCompile(`(?s)<td[^>]*class=['"]result-snippet['"][^>]*>(.*?)</td>`)

	tagPattern = regexp.MustCompile(`<[^>]+>`)
)

// DuckDuckGo scrapes DuckDuckGo's lite HTML interface. It needs no API key
// but should be rate limited (see New).
type DuckDuckGo struct {
	MaxResults int
	Client     *http.Client
}

// Name returns the provider identifier.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search posts the query form and parses results from the returned page.
// Results without a snippet are dropped since only snippet text grounds
// research.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]types.Snippet, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ddgEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", ddgUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httputil.DoWithRetry(ctx, clientOr(d.Client), req, 0)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	maxResults := d.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return truncate(parseDDGResults(string(body)), maxResults), nil
}

// parseDDGResults pairs the i-th result link with the i-th snippet cell.
func parseDDGResults(page string) []types.Snippet {
	links := ddgLinkPattern.FindAllStringSubmatch(page, -1)
	cells := ddgSnippetPattern.FindAllStringSubmatch(page, -1)

	var snippets []types.Snippet
	for i, m := range links {
		href := m[1]
		if href == "" {
			href = m[2]
		}
		if i >= len(cells) {
			break
		}
		text := cleanHTML(cells[i][1])
		if text == "" {
			continue
		}
		snippets = append(snippets, types.Snippet{
			Text:   text,
			Title:  cleanHTML(m[3]),
			URL:    strings.TrimSpace(href),
			Source: "duckduckgo",
		})
	}
	return snippets
}

// cleanHTML strips tags, decodes entities and collapses whitespace.
func cleanHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
