// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/pdiddy/content-crafter/pkg/types"
)

// Limited waits on a token-bucket limiter before every query.
type Limited struct {
	Provider Provider
	Limiter  *rate.Limiter
}

// NewLimited allows rps queries per second with a burst of one.
func NewLimited(p Provider, rps float64) *Limited {
	return &Limited{Provider: p, Limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Name returns the wrapped provider's identifier.
func (l *Limited) Name() string { return l.Provider.Name() }

// Search waits for a token, then delegates. A cancelled context while
// waiting returns the context error.
func (l *Limited) Search(ctx context.Context, query string) ([]types.Snippet, error) {
	if err := l.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.Provider.Search(ctx, query)
}
