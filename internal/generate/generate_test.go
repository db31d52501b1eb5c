// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-crafter/internal/httputil"
	"github.com/pdiddy/content-crafter/pkg/types"
)

func init() {
	// Use tiny delays so tests finish quickly.
	backoffBase = time.Millisecond
	httputil.RetryBaseDelay = time.Millisecond
}

// flakyBackend fails the first failures calls, then returns text.
type flakyBackend struct {
	failures int
	calls    int
}

func (f *flakyBackend) Generate(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("temporary failure")
	}
	return "ok", nil
}

func TestCannedFirstMatchWins(t *testing.T) {
	c := NewCanned(
		Rule{Match: "Analyst", Response: "first"},
		Rule{Match: "Research", Response: "second"},
	)

	got, err := c.Generate(context.Background(), "You are a Research Analyst.", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = c.Generate(context.Background(), "You are a Research Lead.", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestCannedFallback(t *testing.T) {
	c := NewCanned(Rule{Match: "Writer", Response: "article"})

	got, err := c.Generate(context.Background(), "You are an Editor.", "p")
	require.NoError(t, err)
	assert.Equal(t, DefaultFallback, got)

	c.Fallback = "custom"
	got, _ = c.Generate(context.Background(), "You are an Editor.", "p")
	assert.Equal(t, "custom", got)
}

func TestCannedRecordsCalls(t *testing.T) {
	c := NewCanned()
	c.Generate(context.Background(), "sys-1", "prompt-1")
	c.Generate(context.Background(), "sys-2", "prompt-2")

	calls := c.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, Call{SystemInstruction: "sys-1", Prompt: "prompt-1"}, calls[0])
	assert.Equal(t, Call{SystemInstruction: "sys-2", Prompt: "prompt-2"}, calls[1])

	calls[0].Prompt = "mutated"
	assert.Equal(t, "prompt-1", c.Calls()[0].Prompt)
}

func TestRetrying(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		maxRetries int
		wantErr    bool
		wantCalls  int
	}{
		{"succeeds first try", 0, 3, false, 1},
		{"succeeds after retries", 2, 3, false, 3},
		{"exhausts retries", 5, 2, true, 3},
		{"no retries", 1, 0, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &flakyBackend{failures: tt.failures}
			r := &Retrying{Backend: b, MaxRetries: tt.maxRetries}

			got, err := r.Generate(context.Background(), "sys", "prompt")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "temporary failure")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ok", got)
			}
			assert.Equal(t, tt.wantCalls, b.calls)
		})
	}
}

func TestRetryingContextCancelled(t *testing.T) {
	saved := backoffBase
	backoffBase = time.Hour
	defer func() { backoffBase = saved }()

	ctx, cancel := context.WithCancel(context.Background())
	b := &flakyBackend{failures: 10}
	r := &Retrying{Backend: b, MaxRetries: 3}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Generate(ctx, "sys", "prompt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, b.calls)
}

func claudeTestServer(t *testing.T, status int, body string, got *claudeRequest) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	saved := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() {
		claudeAPIURL = saved
		ts.Close()
	})
	return ts
}

func TestClaudeBackendGenerate(t *testing.T) {
	var req claudeRequest
	ts := claudeTestServer(t, http.StatusOK,
		`{"content":[{"type":"text","text":"Hello, "},{"type":"tool_use"},{"type":"text","text":"world"}]}`, &req)

	b := &ClaudeBackend{APIKey: "test-key", Model: "claude-test", Client: ts.Client()}
	got, err := b.Generate(context.Background(), "You are a Research Analyst.", "Topic: Go")
	require.NoError(t, err)

	assert.Equal(t, "Hello, world", got)
	assert.Equal(t, "claude-test", req.Model)
	assert.Equal(t, defaultMaxTokens, req.MaxTokens)
	assert.Equal(t, "You are a Research Analyst.", req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, claudeMessage{Role: "user", Content: "Topic: Go"}, req.Messages[0])
}

func TestClaudeBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, "returned 500"},
		{"malformed json", http.StatusOK, `{not json`, "decoding Claude response"},
		{"no text blocks", http.StatusOK, `{"content":[]}`, "no text content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := claudeTestServer(t, tt.status, tt.body, nil)
			b := &ClaudeBackend{APIKey: "test-key", Model: "m", MaxTokens: 100, Client: ts.Client()}

			_, err := b.Generate(context.Background(), "sys", "prompt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNew(t *testing.T) {
	canned := NewCanned()

	tests := []struct {
		name    string
		cfg     types.GenerationConfig
		canned  *Canned
		check   func(t *testing.T, b Backend)
		wantErr string
	}{
		{
			name:   "default is canned",
			cfg:    types.GenerationConfig{},
			canned: canned,
			check: func(t *testing.T, b Backend) {
				assert.Same(t, canned, b)
			},
		},
		{
			name:   "canned ignores retries",
			cfg:    types.GenerationConfig{Backend: types.BackendCanned, AIConfig: types.AIConfig{MaxRetries: 3}},
			canned: canned,
			check: func(t *testing.T, b Backend) {
				assert.Same(t, canned, b)
			},
		},
		{
			name:    "canned without script",
			cfg:     types.GenerationConfig{Backend: types.BackendCanned},
			wantErr: "requires a script",
		},
		{
			name: "claude with default model",
			cfg:  types.GenerationConfig{Backend: types.BackendClaude, AIConfig: types.AIConfig{APIKey: "k"}},
			check: func(t *testing.T, b Backend) {
				cb, ok := b.(*ClaudeBackend)
				require.True(t, ok)
				assert.Equal(t, defaultClaudeModel, cb.Model)
			},
		},
		{
			name:    "claude without key",
			cfg:     types.GenerationConfig{Backend: types.BackendClaude},
			wantErr: "requires an API key",
		},
		{
			name: "claude with retries",
			cfg:  types.GenerationConfig{Backend: types.BackendClaude, AIConfig: types.AIConfig{APIKey: "k", MaxRetries: 2}},
			check: func(t *testing.T, b Backend) {
				r, ok := b.(*Retrying)
				require.True(t, ok)
				assert.Equal(t, 2, r.MaxRetries)
				assert.IsType(t, &ClaudeBackend{}, r.Backend)
			},
		},
		{
			name: "openai with model",
			cfg:  types.GenerationConfig{Backend: types.BackendOpenAI, AIConfig: types.AIConfig{APIKey: "k", Model: "gpt-test"}},
			check: func(t *testing.T, b Backend) {
				ob, ok := b.(*OpenAIBackend)
				require.True(t, ok)
				assert.Equal(t, "gpt-test", ob.Model)
			},
		},
		{
			name:    "openai without key",
			cfg:     types.GenerationConfig{Backend: types.BackendOpenAI},
			wantErr: "requires an API key",
		},
		{
			name:    "unknown backend",
			cfg:     types.GenerationConfig{Backend: "llama"},
			wantErr: "unsupported generation backend",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.cfg, http.DefaultClient, tt.canned)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, b)
		})
	}
}

// countingTransport counts the requests that pass through it.
type countingTransport struct {
	n int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.n++
	return http.DefaultTransport.RoundTrip(r)
}

func openAITestServer(t *testing.T, body *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"## Outline"}}]}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestOpenAIBackendGenerate(t *testing.T) {
	var body map[string]any
	ts := openAITestServer(t, &body)

	b, err := NewOpenAIBackend(types.GenerationConfig{
		AIConfig: types.AIConfig{APIKey: "test-key", Model: "gpt-test"},
		BaseURL:  ts.URL,
	}, nil)
	require.NoError(t, err)

	got, err := b.Generate(context.Background(), "You are an expert Content Strategist.", "Topic: Go")
	require.NoError(t, err)
	assert.Equal(t, "## Outline", got)

	assert.Equal(t, "gpt-test", body["model"])
	assert.Equal(t, float64(defaultMaxTokens), body["max_tokens"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestNewOpenAIUsesMaxTokensAndClient(t *testing.T) {
	var body map[string]any
	ts := openAITestServer(t, &body)

	transport := &countingTransport{}
	b, err := New(types.GenerationConfig{
		AIConfig:  types.AIConfig{APIKey: "test-key", Model: "gpt-test"},
		Backend:   types.BackendOpenAI,
		BaseURL:   ts.URL,
		MaxTokens: 77,
	}, &http.Client{Transport: transport}, nil)
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), "sys", "prompt")
	require.NoError(t, err)

	assert.Equal(t, float64(77), body["max_tokens"])
	assert.Equal(t, 1, transport.n)
}
