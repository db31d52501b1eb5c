// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ErrorMarker prefixes the plain-text form of a failed draft. Callers that
// only see text distinguish failure by this prefix.
const ErrorMarker = "ERROR"

// IsErrorText reports whether s is the plain-text form of a failed draft.
func IsErrorText(s string) bool {
	return strings.HasPrefix(s, ErrorMarker)
}

// DraftStatus distinguishes a produced article from a terminal failure.
type DraftStatus string

const (
	DraftOK     DraftStatus = "ok"
	DraftFailed DraftStatus = "failed"
)

// Draft is the terminal artifact of a pipeline run: either the article
// text or the reason the pipeline could not produce one.
type Draft struct {
	// Status is ok or failed.
	Status DraftStatus `json:"status" yaml:"status"`

	// Text is the article Markdown. Empty when Status is failed.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Reason explains a failure. Empty when Status is ok.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// DraftOf returns a successful draft carrying text.
func DraftOf(text string) Draft {
	return Draft{Status: DraftOK, Text: text}
}

// DraftFailure returns a failed draft carrying reason.
func DraftFailure(reason string) Draft {
	return Draft{Status: DraftFailed, Reason: reason}
}

// Failed reports whether the draft is a terminal failure.
func (d Draft) Failed() bool {
	return d.Status == DraftFailed
}

// String collapses the draft to plain text: the article on success,
// "ERROR: <reason>" on failure.
func (d Draft) String() string {
	if d.Failed() {
		return ErrorMarker + ": " + d.Reason
	}
	return d.Text
}
