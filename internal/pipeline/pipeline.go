// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the three content stages (research, outline, draft)
// in fixed order, passing an accumulating State from one to the next.
//
// Stages never return errors. A malformed or failed collaborator response
// degrades the stage's output (empty research, empty outline) and the next
// stage's precondition decides whether to continue. Only the draft stage can
// fail terminally, and that failure is the run's result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/content-crafter/pkg/types"
)

// Generator produces text from a system instruction and a user prompt.
// An error is treated like unusable text: the calling stage degrades.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// Searcher returns snippets that ground the research stage.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Snippet, error)
}

// Outcome classifies how a stage finished.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeDegraded Outcome = "degraded"
	OutcomeSkipped  Outcome = "skipped"
)

// StageReport records how one intermediate stage finished.
type StageReport struct {
	Stage   string  `json:"stage" yaml:"stage"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Detail  string  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Result is the structured outcome of one run.
type Result struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Topic   string        `json:"topic" yaml:"topic"`
	State   State         `json:"state" yaml:"state"`
	Reports []StageReport `json:"stages" yaml:"stages"`
	Draft   types.Draft   `json:"draft" yaml:"draft"`
}

// Text collapses the result to the plain-text pipeline output.
func (r Result) Text() string {
	return r.Draft.String()
}

// Crafter wires the stages to their collaborators. A Crafter holds no
// per-run state, so one Crafter may serve concurrent runs as long as its
// Generator and Searcher allow it.
type Crafter struct {
	gen    Generator
	search Searcher
	w      io.Writer
	newID  func() string
}

// New creates a Crafter. Progress messages are written to w; pass
// io.Discard to silence them.
func New(gen Generator, search Searcher, w io.Writer) (*Crafter, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if search == nil {
		return nil, errors.New("searcher is required")
	}
	if w == nil {
		w = io.Discard
	}
	return &Crafter{
		gen:    gen,
		search: search,
		w:      w,
		newID:  func() string { return uuid.New().String() },
	}, nil
}

// Run executes research, outline and draft for topic and returns the
// structured result. The draft is trimmed on success; a failed draft is
// returned unchanged. Generated text that starts with types.ErrorMarker
// counts as a failure.
func (c *Crafter) Run(ctx context.Context, topic string) Result {
	res := Result{RunID: c.newID(), Topic: topic}

	fmt.Fprintln(c.w, "--- CONTENT CRAFTER AGENT SYSTEM INITIATED ---")
	fmt.Fprintf(c.w, "Goal: Generate a blog post on '%s'\n", topic)

	if strings.TrimSpace(topic) == "" {
		res.Draft = types.DraftFailure("topic is empty")
		return res
	}

	st := NewState(topic)

	st, rep := c.Research(ctx, st)
	res.Reports = append(res.Reports, rep)

	st, rep = c.Outline(ctx, st)
	res.Reports = append(res.Reports, rep)

	draft := c.Draft(ctx, st)
	res.State = st

	fmt.Fprintln(c.w, "\n--- PROCESS COMPLETE ---")

	if !draft.Failed() {
		draft = settleDraft(draft.Text)
	}
	res.Draft = draft
	return res
}

// settleDraft trims a generated draft. Empty text and text a backend
// marked with types.ErrorMarker both become failures, so Draft.Failed
// agrees with what RunText prints.
func settleDraft(text string) types.Draft {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return types.DraftFailure("draft generation returned empty text")
	case types.IsErrorText(text):
		reason := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(text, types.ErrorMarker), ":"))
		if reason == "" {
			reason = "draft generation reported an error"
		}
		return types.DraftFailure(reason)
	}
	return types.DraftOf(text)
}

// RunText executes a run and returns its plain-text output: the article, or
// a string starting with types.ErrorMarker.
func (c *Crafter) RunText(ctx context.Context, topic string) string {
	return c.Run(ctx, topic).Text()
}
