// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
)

const stageOutline = "outline"

// Outline asks the generator for a Markdown outline built from the topic and
// research. Without any research signal (no research, or both lists empty)
// it sets an empty outline and returns without calling the generator. The
// generator's response is stored verbatim.
func (c *Crafter) Outline(ctx context.Context, st State) (State, StageReport) {
	fmt.Fprintln(c.w, "\n[STAGE 2: OUTLINE] Creating blog outline...")

	if !st.HasResearchSignal() {
		fmt.Fprintln(c.w, "  [Failure] Missing research data. Skipping outline.")
		return st.WithOutline(""), StageReport{
			Stage:   stageOutline,
			Outcome: OutcomeSkipped,
			Detail:  "no research data",
		}
	}

	research := st.ResearchOrEmpty()
	prompt, err := render(outlinePromptTmpl, promptData{
		Topic:    st.Topic,
		Keywords: research.Keywords,
		Facts:    research.Facts,
	})
	if err != nil {
		return st.WithOutline(""), StageReport{Stage: stageOutline, Outcome: OutcomeDegraded, Detail: fmt.Sprintf("rendering prompt: %v", err)}
	}

	outline, err := c.gen.Generate(ctx, outlineInstruction, prompt)
	if err != nil {
		fmt.Fprintf(c.w, "  [Error] Outline generation failed: %v\n", err)
		return st.WithOutline(""), StageReport{Stage: stageOutline, Outcome: OutcomeDegraded, Detail: fmt.Sprintf("generation failed: %v", err)}
	}

	fmt.Fprintf(c.w, "  [Success] Outline created (Length: %d characters).\n", len(outline))
	return st.WithOutline(outline), StageReport{
		Stage:   stageOutline,
		Outcome: OutcomeOK,
		Detail:  fmt.Sprintf("%d characters", len(outline)),
	}
}
