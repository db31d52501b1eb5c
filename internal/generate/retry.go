// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"math"
	"time"
)

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// Retrying retries a failed Generate call with exponential backoff: 1s, 2s,
// 4s, ... It returns the first success, or the last error once MaxRetries
// retries are spent.
type Retrying struct {
	Backend    Backend
	MaxRetries int
}

// Generate calls the wrapped backend until it succeeds or retries run out.
func (r *Retrying) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := r.Backend.Generate(ctx, systemInstruction, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", r.MaxRetries, lastErr)
}
