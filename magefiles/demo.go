//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Demo builds the binary and runs the offline pipeline on the default topic.
func Demo() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "run", "--backend", "canned", "--search", "canned")
}

// Corpus builds the binary and indexes corpus/sources into corpus/index.
func Corpus() error {
	mg.Deps(Init, Build)
	if err := sh.RunV(filepath.Join(binDir, binName), "corpus", "ingest"); err != nil {
		return fmt.Errorf("corpus ingest: %w", err)
	}
	return nil
}
