package types

import "time"

// HTTPConfig holds shared HTTP settings used by collaborators that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-crafter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for calling a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls.
	// Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerationBackend identifies the generation client implementation.
type GenerationBackend string

const (
	BackendCanned GenerationBackend = "canned"
	BackendClaude GenerationBackend = "claude"
	BackendOpenAI GenerationBackend = "openai"
)

// GenerationConfig holds settings for the generation client.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// Backend selects the client: canned, claude, or openai.
	Backend GenerationBackend `json:"backend" yaml:"backend"`

	// BaseURL overrides the API endpoint for OpenAI-compatible gateways.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxTokens caps the response length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// SearchProviderName identifies the search provider implementation.
type SearchProviderName string

const (
	SearchCanned     SearchProviderName = "canned"
	SearchTavily     SearchProviderName = "tavily"
	SearchDuckDuckGo SearchProviderName = "duckduckgo"
	SearchArxiv      SearchProviderName = "arxiv"
	SearchCorpus     SearchProviderName = "corpus"
	SearchNone       SearchProviderName = "none"
)

// SearchConfig holds settings for the search provider.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the backend: canned, tavily, duckduckgo, arxiv, corpus, or none.
	Provider SearchProviderName `json:"provider" yaml:"provider"`

	// APIKey authenticates providers that need one (tavily).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Depth is the Tavily search depth: basic or advanced.
	Depth string `json:"depth,omitempty" yaml:"depth,omitempty"`

	// MaxResults is the maximum number of snippets per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RequestsPerSecond limits outgoing queries. Zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// CorpusConfig holds settings for the local snippet corpus.
type CorpusConfig struct {
	// CorpusDir is the base directory for the corpus (contains sources/, index/).
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// OutputConfig holds settings for run artifacts and terminal output.
type OutputConfig struct {
	// OutputDir receives the article and run record. Empty disables writing.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Render formats the article for the terminal instead of printing raw Markdown.
	Render bool `json:"render" yaml:"render"`
}

// PipelineConfig groups all configuration for one content-crafter invocation.
type PipelineConfig struct {
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Search     SearchConfig     `json:"search" yaml:"search"`
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}
