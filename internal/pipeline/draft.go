// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/content-crafter/pkg/types"
)

// missingOutlineReason is the failure reason when there is nothing to draft from.
const missingOutlineReason = "Cannot draft the post. Outline is missing."

// Draft writes the article from the outline and research. It does not
// modify the State; the draft is returned to the caller. With an empty
// outline it fails immediately without calling the generator.
func (c *Crafter) Draft(ctx context.Context, st State) types.Draft {
	fmt.Fprintln(c.w, "\n[STAGE 3: DRAFT] Drafting final blog post...")

	if st.Outline == "" {
		fmt.Fprintf(c.w, "  [Failure] %s\n", missingOutlineReason)
		return types.DraftFailure(missingOutlineReason)
	}

	research := st.ResearchOrEmpty()
	prompt, err := render(draftPromptTmpl, promptData{
		Topic:    st.Topic,
		Outline:  st.Outline,
		Keywords: research.Keywords,
		Facts:    research.Facts,
	})
	if err != nil {
		return types.DraftFailure(fmt.Sprintf("rendering draft prompt: %v", err))
	}

	text, err := c.gen.Generate(ctx, draftInstruction, prompt)
	if err != nil {
		fmt.Fprintf(c.w, "  [Error] Draft generation failed: %v\n", err)
		return types.DraftFailure(fmt.Sprintf("draft generation failed: %v", err))
	}

	fmt.Fprintf(c.w, "  [Success] Draft written (Length: %d characters).\n", len(text))
	return types.DraftOf(text)
}
