// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search provides the snippet providers that ground the research
// stage: fixed snippets, Tavily, DuckDuckGo, arXiv and the local corpus.
package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/content-crafter/pkg/types"
)

const defaultMaxResults = 5

// Provider returns best-effort snippets for a free-text query. Each provider
// implements this interface per the Strategy pattern.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]types.Snippet, error)
}

// CorpusIndex is the part of the local corpus store the Corpus provider
// needs.
type CorpusIndex interface {
	Search(ctx context.Context, query string, limit int) ([]types.Snippet, error)
}

// New builds the provider selected by cfg.Provider. canned supplies the
// snippets for the canned provider and index backs the corpus provider;
// either may be nil when not selected. A positive cfg.RequestsPerSecond
// wraps the provider in a rate limiter; DuckDuckGo defaults to one query
// per second.
func New(cfg types.SearchConfig, client *http.Client, canned []types.Snippet, index CorpusIndex) (Provider, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	client = clientOr(client)
	rps := cfg.RequestsPerSecond

	var p Provider
	switch cfg.Provider {
	case types.SearchCanned, "":
		p = &Canned{Snippets: canned}
	case types.SearchNone:
		p = None{}
	case types.SearchTavily:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("tavily provider requires an API key (tavily-api-key secret or search.api_key)")
		}
		p = &Tavily{APIKey: cfg.APIKey, Depth: cfg.Depth, MaxResults: maxResults, Client: client}
	case types.SearchDuckDuckGo:
		p = &DuckDuckGo{MaxResults: maxResults, Client: client}
		if rps == 0 {
			rps = 1
		}
	case types.SearchArxiv:
		p = &Arxiv{MaxResults: maxResults, UserAgent: cfg.UserAgent, Client: client}
	case types.SearchCorpus:
		if index == nil {
			return nil, fmt.Errorf("corpus provider requires an open corpus")
		}
		p = &Corpus{Index: index, MaxResults: maxResults}
	default:
		return nil, fmt.Errorf("unsupported search provider %q: use canned, tavily, duckduckgo, arxiv, corpus, or none", cfg.Provider)
	}

	if rps > 0 {
		p = NewLimited(p, rps)
	}
	return p, nil
}

// truncate keeps at most n snippets.
func truncate(snippets []types.Snippet, n int) []types.Snippet {
	if n > 0 && len(snippets) > n {
		return snippets[:n]
	}
	return snippets
}

func clientOr(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
