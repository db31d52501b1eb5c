// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the content-crafter pipeline:
// search snippets, structured research, the terminal draft and the
// configuration of every stage.
package types

// Snippet is a short text fragment returned by a search provider. Only Text
// is required; the remaining fields are best-effort provenance.
type Snippet struct {
	// Text is the snippet body shown to the research stage.
	Text string `json:"text" yaml:"text"`

	// Title is the title of the page or document the snippet came from.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// URL locates the source document, when known.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Source names the provider that produced the snippet (e.g. "tavily", "corpus").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// SnippetEntry is one element of a SearchEnvelope.
type SnippetEntry struct {
	Snippet string `json:"snippet" yaml:"snippet"`
}

// SearchEnvelope is the wire shape search results take inside the research
// prompt: {"search_results": [{"snippet": "..."}]}.
type SearchEnvelope struct {
	SearchResults []SnippetEntry `json:"search_results" yaml:"search_results"`
}

// ResearchData holds the structured output of the research stage. The model
// is asked for 4-5 keywords and 3 facts but neither count is enforced. Empty
// lists are a valid, degraded state meaning "no research available".
type ResearchData struct {
	// Keywords are SEO keywords for the topic, in model order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Facts are key facts the article should reference, in model order.
	Facts []string `json:"facts" yaml:"facts"`
}

// EmptyResearch returns the fallback value used when research could not be
// parsed: both lists present and empty.
func EmptyResearch() ResearchData {
	return ResearchData{Keywords: []string{}, Facts: []string{}}
}

// IsEmpty reports whether both lists are empty.
func (r ResearchData) IsEmpty() bool {
	return len(r.Keywords) == 0 && len(r.Facts) == 0
}

// Clone returns a copy that shares no backing arrays with r. Nil lists
// become empty lists.
func (r ResearchData) Clone() ResearchData {
	out := EmptyResearch()
	out.Keywords = append(out.Keywords, r.Keywords...)
	out.Facts = append(out.Facts, r.Facts...)
	return out
}

// EnvelopeOf wraps snippet texts in a SearchEnvelope. The result list is
// never nil, so it marshals as [] rather than null.
func EnvelopeOf(snippets []Snippet) SearchEnvelope {
	env := SearchEnvelope{SearchResults: []SnippetEntry{}}
	for _, s := range snippets {
		env.SearchResults = append(env.SearchResults, SnippetEntry{Snippet: s.Text})
	}
	return env
}
