// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"github.com/pdiddy/content-crafter/pkg/types"
)

// Canned returns the same snippets for every query.
type Canned struct {
	Snippets []types.Snippet
}

// Name returns the provider identifier.
func (c *Canned) Name() string { return "canned" }

// Search returns a copy of the fixed snippets.
func (c *Canned) Search(_ context.Context, _ string) ([]types.Snippet, error) {
	return append([]types.Snippet(nil), c.Snippets...), nil
}

// None returns no snippets; research proceeds ungrounded.
type None struct{}

// Name returns the provider identifier.
func (None) Name() string { return "none" }

// Search returns nil.
func (None) Search(_ context.Context, _ string) ([]types.Snippet, error) {
	return nil, nil
}

// Corpus queries the local snippet corpus.
type Corpus struct {
	Index      CorpusIndex
	MaxResults int
}

// Name returns the provider identifier.
func (c *Corpus) Name() string { return "corpus" }

// Search runs a full-text query against the corpus.
func (c *Corpus) Search(ctx context.Context, query string) ([]types.Snippet, error) {
	return c.Index.Search(ctx, query, c.MaxResults)
}
