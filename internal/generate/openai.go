// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/content-crafter/pkg/types"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIBackend calls chat completions through the openai-go SDK. BaseURL
// makes it usable with any OpenAI-compatible gateway.
type OpenAIBackend struct {
	Model     string
	MaxTokens int
	Opts      []option.RequestOption
}

// NewOpenAIBackend builds an OpenAIBackend from cfg. A nil client leaves
// the SDK's default HTTP client in place.
func NewOpenAIBackend(cfg types.GenerationConfig, client *http.Client) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai backend requires an API key (openai-api-key secret or generation.api_key)")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if client != nil {
		opts = append(opts, option.WithHTTPClient(client))
	}
	return &OpenAIBackend{
		Model:     modelOr(cfg.Model, defaultOpenAIModel),
		MaxTokens: cfg.MaxTokens,
		Opts:      opts,
	}, nil
}

// Generate sends a system and a user message and returns the first choice.
func (o *OpenAIBackend) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(o.Model),
		MaxTokens: openai.Int(int64(maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
