// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"strings"
	"text/template"
)

// System instructions for each stage. The role named in the first sentence
// is what DemoGenerator keys its canned responses on.
const (
	researchInstruction = "You are a world-class Research Analyst. Your task is to process raw search results " +
		"and extract the most relevant SEO keywords (4-5 max) and 3 key facts. " +
		"Respond with ONLY a JSON object with keys 'keywords' (list of strings) and 'facts' (list of strings). " +
		"The response MUST be valid JSON with no text before or after it."

	outlineInstruction = "You are an expert Content Strategist. Your task is to create a comprehensive, engaging, and " +
		"SEO-friendly blog post outline using the provided topic, keywords, and facts. " +
		"The outline must be in Markdown format with clear H2 (##) and H3 (###) headers."

	draftInstruction = "You are a Professional Content Writer. Your task is to write a compelling and well-researched " +
		"blog post in Markdown format. Use the provided outline, facts, and keywords to write a " +
		"minimum 500-word post. Ensure natural flow and engaging prose."
)

// searchQueryPrefix is prepended to the topic to form the research query.
const searchQueryPrefix = "SEO keywords and current facts about: "

var researchPromptTmpl = template.Must(template.New("research").Parse(`Topic: {{.Topic}}

Raw Search Results:
{{.Results}}

Extract the requested structured data.`))

var outlinePromptTmpl = template.Must(template.New("outline").Funcs(promptFuncs).Parse(`Topic: {{.Topic}}
Target Keywords: {{join .Keywords ", "}}
Key Facts to Include: {{join .Facts "; "}}

Generate a detailed, full blog post outline in Markdown.`))

var draftPromptTmpl = template.Must(template.New("draft").Funcs(promptFuncs).Parse(`Topic: {{.Topic}}
Outline to Follow:
{{.Outline}}

Keywords to Integrate: {{join .Keywords ", "}}
Key Facts to Reference: {{join .Facts "; "}}

Write the complete blog post following this structure.`))

var promptFuncs = template.FuncMap{"join": strings.Join}

// promptData is the union of fields the stage templates reference.
type promptData struct {
	Topic    string
	Results  string
	Outline  string
	Keywords []string
	Facts    []string
}

// render executes tmpl with data.
func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
