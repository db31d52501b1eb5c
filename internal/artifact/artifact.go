// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifact writes the output of a finished run to disk: the article
// (or error text) as Markdown and a YAML record of what each stage produced.
// Nothing in the pipeline reads these files back.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-crafter/internal/pipeline"
	"github.com/pdiddy/content-crafter/pkg/types"
)

// maxSlugLen bounds the topic part of artifact filenames.
const maxSlugLen = 60

// Record is the YAML sidecar written next to the article.
type Record struct {
	RunID    string                 `yaml:"run_id"`
	Topic    string                 `yaml:"topic"`
	Created  time.Time              `yaml:"created"`
	Status   types.DraftStatus      `yaml:"status"`
	Reason   string                 `yaml:"reason,omitempty"`
	Stages   []pipeline.StageReport `yaml:"stages"`
	Research *types.ResearchData    `yaml:"research,omitempty"`
	Outline  string                 `yaml:"outline,omitempty"`
}

// Paths are the files written by Save.
type Paths struct {
	Article string
	Record  string
}

// Save writes <slug>-<id>.md and <slug>-<id>.yaml into dir, creating it if
// needed. id is the first eight characters of the run ID.
func Save(dir string, res pipeline.Result, now time.Time) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output directory: %w", err)
	}

	base := Slug(res.Topic)
	if id := shortID(res.RunID); id != "" {
		base += "-" + id
	}

	paths := Paths{
		Article: filepath.Join(dir, base+".md"),
		Record:  filepath.Join(dir, base+".yaml"),
	}

	if err := os.WriteFile(paths.Article, []byte(res.Text()+"\n"), 0o644); err != nil {
		return Paths{}, fmt.Errorf("writing article: %w", err)
	}

	rec := Record{
		RunID:    res.RunID,
		Topic:    res.Topic,
		Created:  now.UTC(),
		Status:   res.Draft.Status,
		Reason:   res.Draft.Reason,
		Stages:   res.Reports,
		Research: res.State.Research,
		Outline:  res.State.Outline,
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return Paths{}, fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(paths.Record, data, 0o644); err != nil {
		return Paths{}, fmt.Errorf("writing record: %w", err)
	}

	return paths, nil
}

// Slug lowercases topic and joins its letters and digits with hyphens.
// An empty result becomes "untitled".
func Slug(topic string) string {
	words := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	slug := strings.Join(words, "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
