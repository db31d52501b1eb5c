// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-crafter/pkg/types"
)

const (
	defaultTimeout   = 120 * time.Second
	defaultUserAgent = "content-crafter/0.1"
)

// envKeyReplacer maps config keys to environment variable names:
// generation.api_key becomes CONTENT_CRAFTER_GENERATION_API_KEY.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// configKeys maps run flags to their keys in the config file.
var configKeys = map[string]string{
	"backend":      "generation.backend",
	"model":        "generation.model",
	"api-key":      "generation.api_key",
	"base-url":     "generation.base_url",
	"max-retries":  "generation.max_retries",
	"max-tokens":   "generation.max_tokens",
	"search":       "search.provider",
	"search-key":   "search.api_key",
	"search-depth": "search.depth",
	"search-rate":  "search.requests_per_second",
	"max-snippets": "search.max_results",
	"timeout":      "search.timeout",
	"corpus-dir":   "corpus.corpus_dir",
	"output-dir":   "output.output_dir",
	"render":       "output.render",
}

// bindFlags binds every flag in configKeys that fs defines, so a flag set
// on the command line overrides the config file and environment.
func bindFlags(fs *pflag.FlagSet) {
	for flag, key := range configKeys {
		if f := fs.Lookup(flag); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}

// pipelineConfig assembles the configuration from viper, filling API keys
// from .secrets/ when neither flags, config nor environment set them.
func pipelineConfig() types.PipelineConfig {
	backend := types.GenerationBackend(viper.GetString("generation.backend"))

	apiKey := viper.GetString("generation.api_key")
	switch backend {
	case types.BackendClaude:
		apiKey = secretDefault("anthropic-api-key", apiKey)
	case types.BackendOpenAI:
		apiKey = secretDefault("openai-api-key", apiKey)
	}

	timeout := viper.GetDuration("search.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.PipelineConfig{
		Generation: types.GenerationConfig{
			AIConfig: types.AIConfig{
				Model:      viper.GetString("generation.model"),
				APIKey:     apiKey,
				MaxRetries: viper.GetInt("generation.max_retries"),
			},
			Backend:   backend,
			BaseURL:   viper.GetString("generation.base_url"),
			MaxTokens: viper.GetInt("generation.max_tokens"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Provider:          types.SearchProviderName(viper.GetString("search.provider")),
			APIKey:            secretDefault("tavily-api-key", viper.GetString("search.api_key")),
			Depth:             viper.GetString("search.depth"),
			MaxResults:        viper.GetInt("search.max_results"),
			RequestsPerSecond: viper.GetFloat64("search.requests_per_second"),
		},
		Corpus: types.CorpusConfig{
			CorpusDir:  viper.GetString("corpus.corpus_dir"),
			MaxResults: viper.GetInt("corpus.max_results"),
		},
		Output: types.OutputConfig{
			OutputDir: viper.GetString("output.output_dir"),
			Render:    viper.GetBool("output.render"),
		},
	}
}
