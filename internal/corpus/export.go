// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the whole corpus to corpus/index/export.yaml in the
// same layout as a source file, and returns the path written.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	file, err := s.exportFile(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.corpusDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the whole corpus to corpus/index/export.json and
// returns the path written.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	file, err := s.exportFile(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.corpusDir, indexDir, "export.json")
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportFile(ctx context.Context) (SourceFile, error) {
	snippets, err := s.All(ctx)
	if err != nil {
		return SourceFile{}, fmt.Errorf("querying for export: %w", err)
	}
	return SourceFile{Snippets: snippets}, nil
}
