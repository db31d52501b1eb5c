// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate provides generation clients: a deterministic canned
// stand-in, the Claude Messages API and OpenAI-compatible chat completions.
// Every client turns a system instruction and a user prompt into text.
package generate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/content-crafter/pkg/types"
)

const defaultMaxTokens = 4096

// Backend is the contract every generation client satisfies.
type Backend interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// New builds the backend selected by cfg.Backend. The canned backend needs
// a script, so it is built from canned; it is ignored for other backends.
// When cfg.MaxRetries is positive the backend is wrapped in Retrying.
func New(cfg types.GenerationConfig, client *http.Client, canned *Canned) (Backend, error) {
	var b Backend

	switch cfg.Backend {
	case types.BackendCanned, "":
		if canned == nil {
			return nil, fmt.Errorf("canned backend requires a script")
		}
		return canned, nil
	case types.BackendClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude backend requires an API key (anthropic-api-key secret or generation.api_key)")
		}
		b = &ClaudeBackend{
			APIKey:    cfg.APIKey,
			Model:     modelOr(cfg.Model, defaultClaudeModel),
			MaxTokens: cfg.MaxTokens,
			Client:    client,
		}
	case types.BackendOpenAI:
		ob, err := NewOpenAIBackend(cfg, client)
		if err != nil {
			return nil, err
		}
		b = ob
	default:
		return nil, fmt.Errorf("unsupported generation backend %q: use canned, claude, or openai", cfg.Backend)
	}

	if cfg.MaxRetries > 0 {
		b = &Retrying{Backend: b, MaxRetries: cfg.MaxRetries}
	}
	return b, nil
}

func modelOr(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
