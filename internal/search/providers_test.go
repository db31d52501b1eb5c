// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Tavily ---

const sampleTavilyJSON = `{
  "query": "SEO keywords and current facts about: Go",
  "results": [
    {"title": "Go 1.22 released", "url": "https://go.dev/blog/go1.22", "content": "Go 1.22 adds range over integers."},
    {"title": "Empty", "url": "https://example.com/empty", "content": "  "},
    {"title": "Generics", "url": "https://go.dev/blog/generics", "content": "Generics arrived in Go 1.18."}
  ]
}`

func tavilyTestServer(t *testing.T, status int, body string, got *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	old := tavilyURL
	tavilyURL = ts.URL
	t.Cleanup(func() {
		tavilyURL = old
		ts.Close()
	})
	return ts
}

func TestTavilySearch(t *testing.T) {
	var payload map[string]any
	ts := tavilyTestServer(t, http.StatusOK, sampleTavilyJSON, &payload)

	tv := &Tavily{APIKey: "tvly-test", MaxResults: 4, Client: ts.Client()}
	got, err := tv.Search(context.Background(), "SEO keywords and current facts about: Go")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Go 1.22 adds range over integers.", got[0].Text)
	assert.Equal(t, "Go 1.22 released", got[0].Title)
	assert.Equal(t, "https://go.dev/blog/go1.22", got[0].URL)
	assert.Equal(t, "tavily", got[0].Source)
	assert.Equal(t, "Generics arrived in Go 1.18.", got[1].Text)

	assert.Equal(t, "tvly-test", payload["api_key"])
	assert.Equal(t, "SEO keywords and current facts about: Go", payload["query"])
	assert.Equal(t, "basic", payload["search_depth"])
	assert.Equal(t, float64(4), payload["max_results"])
}

func TestTavilySearchTruncates(t *testing.T) {
	ts := tavilyTestServer(t, http.StatusOK, sampleTavilyJSON, nil)

	tv := &Tavily{APIKey: "k", MaxResults: 1, Client: ts.Client()}
	got, err := tv.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTavilySearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		status int
		body   string
		errMsg string
	}{
		{"missing key", " ", http.StatusOK, sampleTavilyJSON, "API key is missing"},
		{"unauthorized", "k", http.StatusUnauthorized, `{"detail":"bad key"}`, "tavily http 401"},
		{"malformed json", "k", http.StatusOK, `{"results": [`, "decoding tavily response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tavilyTestServer(t, tt.status, tt.body, nil)
			tv := &Tavily{APIKey: tt.key, Client: ts.Client()}

			_, err := tv.Search(context.Background(), "q")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// --- DuckDuckGo ---

const sampleDDGHTML = `<html><body><table>
<tr><td>1.&nbsp;</td><td><a rel="nofollow" href="https://go.dev/" class='result-link'>The Go Programming Language</a></td></tr>
<tr><td>&nbsp;</td><td class='result-snippet'>Go is an <b>open source</b> programming language &amp; toolchain.</td></tr>
<tr><td>2.&nbsp;</td><td><a class='result-link' href="https://en.wikipedia.org/wiki/Go">Go (programming language)</a></td></tr>
<tr><td>&nbsp;</td><td class='result-snippet'>
   Go is statically typed.
</td></tr>
<tr><td>3.&nbsp;</td><td><a href="https://example.com/" class='result-link'>No snippet</a></td></tr>
<tr><td>&nbsp;</td><td class='result-snippet'></td></tr>
</table></body></html>`

func TestParseDDGResults(t *testing.T) {
	got := parseDDGResults(sampleDDGHTML)

	require.Len(t, got, 2)
	assert.Equal(t, "Go is an open source programming language & toolchain.", got[0].Text)
	assert.Equal(t, "The Go Programming Language", got[0].Title)
	assert.Equal(t, "https://go.dev/", got[0].URL)
	assert.Equal(t, "duckduckgo", got[0].Source)

	assert.Equal(t, "Go is statically typed.", got[1].Text)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go", got[1].URL)
}

func TestParseDDGResultsEmptyPage(t *testing.T) {
	assert.Empty(t, parseDDGResults("<html><body>No results.</body></html>"))
}

func TestDuckDuckGoSearch(t *testing.T) {
	var query string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		require.NoError(t, r.ParseForm())
		query = r.PostForm.Get("q")
		fmt.Fprint(w, sampleDDGHTML)
	}))
	defer ts.Close()

	old := ddgEndpoint
	ddgEndpoint = ts.URL
	defer func() { ddgEndpoint = old }()

	d := &DuckDuckGo{MaxResults: 1, Client: ts.Client()}
	got, err := d.Search(context.Background(), "golang language")
	require.NoError(t, err)

	assert.Equal(t, "golang language", query)
	require.Len(t, got, 1)
	assert.Equal(t, "https://go.dev/", got[0].URL)
}

func TestDuckDuckGoSearchErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := ddgEndpoint
	ddgEndpoint = ts.URL
	defer func() { ddgEndpoint = old }()

	d := &DuckDuckGo{Client: ts.Client()}

	_, err := d.Search(context.Background(), "  ")
	assert.ErrorContains(t, err, "query is empty")

	_, err = d.Search(context.Background(), "golang")
	assert.ErrorContains(t, err, "duckduckgo http 403")
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>bold</b> text", "bold text"},
		{"a &amp; b &#39;c&#39;", "a & b 'c'"},
		{"  many\n\n   spaces\t", "many spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanHTML(tt.in))
		})
	}
}

// --- arXiv ---

const sampleArxivSearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v5</id>
    <title>Attention Is All
      You Need</title>
    <summary>  The dominant sequence transduction models are based on
      complex recurrent networks.</summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/0000.00000v1</id>
    <title>No abstract</title>
    <summary>   </summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v2</id>
    <title>BERT: Pre-training of Deep Bidirectional Transformers</title>
    <summary>We introduce BERT.</summary>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	var rawQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "content-crafter/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleArxivSearchXML)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &Arxiv{MaxResults: 3, UserAgent: "content-crafter/test", Client: ts.Client()}
	got, err := a.Search(context.Background(), "attention transformers")
	require.NoError(t, err)

	assert.Contains(t, rawQuery, "search_query=all:attention+OR+all:transformers")
	assert.Contains(t, rawQuery, "max_results=3")

	require.Len(t, got, 2)
	assert.Equal(t, "The dominant sequence transduction models are based on complex recurrent networks.", got[0].Text)
	assert.Equal(t, "Attention Is All You Need", got[0].Title)
	assert.Equal(t, "http://arxiv.org/abs/1706.03762v5", got[0].URL)
	assert.Equal(t, "arxiv", got[0].Source)
	assert.Equal(t, "We introduce BERT.", got[1].Text)
}

func TestArxivSearchErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &Arxiv{Client: ts.Client()}

	_, err := a.Search(context.Background(), "a of")
	assert.ErrorContains(t, err, "empty arXiv query")

	_, err = a.Search(context.Background(), "attention")
	assert.ErrorContains(t, err, "HTTP 503")
}

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "attention", "all:attention"},
		{"or-joined", "attention mechanisms", "all:attention+OR+all:mechanisms"},
		{"short terms dropped", "AI in marketing", "all:marketing"},
		{"punctuation trimmed", "about: agents, (systems)", "all:about+OR+all:agents+OR+all:systems"},
		{"escaped", "c++ multi-agent", "all:c%2B%2B+OR+all:multi-agent"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArxivQuery(tt.query))
		})
	}
}
