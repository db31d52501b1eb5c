// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"

	"github.com/pdiddy/content-crafter/internal/generate"
	"github.com/pdiddy/content-crafter/pkg/types"
)

// DefaultTopic is the topic used when none is given.
const DefaultTopic = "The Impact of Multi-Agent Systems on Modern Content Marketing"

var demoResearch = types.ResearchData{
	Keywords: []string{"AI Content Generation", "Blog Automation", "SEO Strategies", "Content Marketing Trends"},
	Facts: []string{
		"AI agents reduce drafting time by up to 70%.",
		"SEO optimization is crucial for organic reach.",
		"Multi-agent systems improve output quality.",
	},
}

const demoOutline = `## Introduction
- The Pain of Manual Content Creation

## Section 1: Why Automation is Necessary
- Time vs. Quality

## Section 2: The Multi-Agent Solution
- Roles of the Research and Drafting Agents

## Conclusion
- Future of AI in Content`

const demoArticle = "# The ContentCrafter: AI-Powered Blog Post Automation\n\n" +
	"## Introduction\nCreating high-quality content consistently is a massive hurdle for many. " +
	"The 'ContentCrafter' agent is designed to solve this by automating the research and drafting process.\n\n" +
	"## Section 1: Why Automation is Necessary\nStudies show that manual content drafting can take up to 10 hours per post. " +
	"With **AI Content Generation**, agents can reduce this time significantly, leading to better **SEO Strategies** and overall content output. " +
	"AI agents reduce drafting time by up to 70%.\n\n" +
	"## Section 2: The Multi-Agent Solution\nOur system uses a multi-agent approach to ensure quality. " +
	"The Research Agent focuses on facts and keywords, while the Drafting Agent focuses on narrative flow. " +
	"This separation of concerns is why **Multi-agent systems improve output quality**.\n\n" +
	"## Conclusion\nBy leveraging the power of specialized AI agents, we can dramatically scale **Content Marketing Trends** and delivery, " +
	"making consistent, optimized content achievable for everyone."

// DemoGenerator returns a canned generator that answers each stage with a
// fixed response, so the pipeline runs end to end without a model.
func DemoGenerator() *generate.Canned {
	research, _ := json.Marshal(demoResearch)
	return generate.NewCanned(
		generate.Rule{Match: "Research Analyst", Response: string(research)},
		generate.Rule{Match: "Content Strategist", Response: demoOutline},
		generate.Rule{Match: "Professional Content Writer", Response: demoArticle},
	)
}

// DemoSnippets are the fixed search results used with DemoGenerator.
func DemoSnippets() []types.Snippet {
	return []types.Snippet{
		{Text: "Top SEO keywords for content creation: 'AI Content Generation', 'Blog Automation', 'Content Marketing Trends'.", Source: "canned"},
		{Text: "A recent study found multi-agent systems significantly improve output quality compared to single-agent LLM calls.", Source: "canned"},
	}
}
