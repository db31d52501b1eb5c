// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"strings"
	"sync"
)

// DefaultFallback is what Canned returns when no rule matches.
const DefaultFallback = "An empty response."

// Rule maps a system instruction fragment to a fixed response.
type Rule struct {
	// Match is a substring of the system instruction.
	Match string

	// Response is returned verbatim when Match is found.
	Response string
}

// Call records one request served by Canned.
type Call struct {
	SystemInstruction string
	Prompt            string
}

// Canned is a deterministic backend that answers from a fixed script. The
// first rule whose Match occurs in the system instruction wins. It never
// returns an error, and it records every call.
type Canned struct {
	Rules    []Rule
	Fallback string

	mu    sync.Mutex
	calls []Call
}

// NewCanned returns a Canned backend with the given rules.
func NewCanned(rules ...Rule) *Canned {
	return &Canned{Rules: rules, Fallback: DefaultFallback}
}

// Generate returns the response of the first matching rule, or Fallback.
func (c *Canned) Generate(_ context.Context, systemInstruction, prompt string) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{SystemInstruction: systemInstruction, Prompt: prompt})
	c.mu.Unlock()

	for _, r := range c.Rules {
		if strings.Contains(systemInstruction, r.Match) {
			return r.Response, nil
		}
	}
	return c.Fallback, nil
}

// Calls returns a copy of the calls served so far.
func (c *Canned) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}
