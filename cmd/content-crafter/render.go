// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/charmbracelet/glamour"
)

// renderMarkdown formats Markdown for the terminal. It returns content
// unchanged when the renderer cannot be built or fails.
func renderMarkdown(content string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
