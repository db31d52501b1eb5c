// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "github.com/pdiddy/content-crafter/pkg/types"

// State is the record threaded through the stages of one run. Stages take a
// State value and return an updated copy; they never modify the value they
// were given. A State belongs to a single run and is never shared between
// concurrent runs.
type State struct {
	// Topic names the subject of the article. Set once by NewState.
	Topic string `json:"topic" yaml:"topic"`

	// Research is written by the research stage. Nil until that stage runs.
	Research *types.ResearchData `json:"research_data,omitempty" yaml:"research_data,omitempty"`

	// Outline is written by the outline stage. Empty means no outline.
	Outline string `json:"outline" yaml:"outline"`
}

// NewState returns the initial State for a run: only Topic is set.
func NewState(topic string) State {
	return State{Topic: topic}
}

// WithResearch returns a copy of s carrying a private copy of r.
func (s State) WithResearch(r types.ResearchData) State {
	c := r.Clone()
	s.Research = &c
	return s
}

// WithOutline returns a copy of s carrying outline.
func (s State) WithOutline(outline string) State {
	s.Outline = outline
	return s
}

// ResearchOrEmpty returns the research data, or empty lists when the
// research stage has not written any.
func (s State) ResearchOrEmpty() types.ResearchData {
	if s.Research == nil {
		return types.EmptyResearch()
	}
	return s.Research.Clone()
}

// HasResearchSignal reports whether there is any research to outline from.
// It is false when research is absent or both lists are empty.
func (s State) HasResearchSignal() bool {
	return s.Research != nil && !s.Research.IsEmpty()
}
