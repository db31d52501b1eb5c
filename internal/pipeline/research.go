// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/content-crafter/pkg/types"
)

const stageResearch = "research"

// ParseTag says whether a research response could be read as ResearchData.
type ParseTag int

const (
	Parsed ParseTag = iota
	Unparsed
)

func (t ParseTag) String() string {
	if t == Parsed {
		return "parsed"
	}
	return "unparsed"
}

// ResearchParse is the tagged result of ParseResearch. Data is meaningful
// only when Tag is Parsed; Raw and Err describe an Unparsed response.
type ResearchParse struct {
	Tag  ParseTag
	Data types.ResearchData
	Raw  string
	Err  error
}

// ParseResearch reads a model response as a JSON object with "keywords"
// and "facts" arrays. A single surrounding Markdown code fence is allowed.
// Missing or null lists parse as empty lists. Anything other than exactly
// one JSON object is Unparsed.
func ParseResearch(raw string) ResearchParse {
	body := stripCodeFence(strings.TrimSpace(raw))
	if !strings.HasPrefix(body, "{") {
		return ResearchParse{Tag: Unparsed, Raw: raw, Err: errors.New("response is not a JSON object")}
	}

	var data types.ResearchData
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return ResearchParse{Tag: Unparsed, Raw: raw, Err: err}
	}
	return ResearchParse{Tag: Parsed, Data: data.Clone(), Raw: raw}
}

// stripCodeFence removes a ```lang ... ``` wrapper around s, if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(s, "```")
	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return s
	}
	return strings.TrimSpace(inner[nl+1:])
}

// Research searches for snippets about the topic, asks the generator to
// structure them into keywords and facts, and stores the parsed data in
// the returned State. When the response cannot be parsed the State carries
// empty lists instead and the report is degraded.
func (c *Crafter) Research(ctx context.Context, st State) (State, StageReport) {
	fmt.Fprintln(c.w, "\n[STAGE 1: RESEARCH] Starting research...")

	query := searchQueryPrefix + st.Topic
	fmt.Fprintf(c.w, "  [Search] %s\n", query)

	snippets, err := c.search.Search(ctx, query)
	if err != nil {
		fmt.Fprintf(c.w, "  [Warning] search failed: %v. Continuing without results.\n", err)
		snippets = nil
	}

	envelope, _ := json.MarshalIndent(types.EnvelopeOf(snippets), "", "  ")

	prompt, err := render(researchPromptTmpl, promptData{Topic: st.Topic, Results: string(envelope)})
	if err != nil {
		return c.researchFallback(st, fmt.Sprintf("rendering prompt: %v", err))
	}

	raw, err := c.gen.Generate(ctx, researchInstruction, prompt)
	if err != nil {
		fmt.Fprintf(c.w, "  [Error] Research generation failed: %v\n", err)
		return c.researchFallback(st, fmt.Sprintf("generation failed: %v", err))
	}

	parsed := ParseResearch(raw)
	if parsed.Tag == Unparsed {
		fmt.Fprintf(c.w, "  [Error] Research stage failed to parse JSON: %v. Raw response: %s\n", parsed.Err, raw)
		return c.researchFallback(st, fmt.Sprintf("unparsed response: %v", parsed.Err))
	}

	fmt.Fprintf(c.w, "  [Success] Research complete. Found %d keywords and %d facts.\n",
		len(parsed.Data.Keywords), len(parsed.Data.Facts))

	return st.WithResearch(parsed.Data), StageReport{
		Stage:   stageResearch,
		Outcome: OutcomeOK,
		Detail:  fmt.Sprintf("%d snippets, %d keywords, %d facts", len(snippets), len(parsed.Data.Keywords), len(parsed.Data.Facts)),
	}
}

func (c *Crafter) researchFallback(st State, detail string) (State, StageReport) {
	return st.WithResearch(types.EmptyResearch()), StageReport{
		Stage:   stageResearch,
		Outcome: OutcomeDegraded,
		Detail:  detail,
	}
}
