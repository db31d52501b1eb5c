// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-crafter/internal/corpus"
	"github.com/pdiddy/content-crafter/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the local snippet corpus (ingest, search, export)",
	Long: `Corpus manages a local SQLite index of search snippets. Runs started
with --search corpus ground their research in it instead of the web.`,
}

// --- ingest subcommand ---

var corpusIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index snippet files from the corpus sources directory",
	Long: `Ingest reads snippet YAML files from <corpus-dir>/sources/ and indexes
them with FTS5. Unchanged files are skipped on subsequent runs; changed
files replace their previous snippets.`,
	RunE: runCorpusIngest,
}

func runCorpusIngest(cmd *cobra.Command, args []string) error {
	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d source file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var corpusSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over the corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCorpusSearch,
}

func runCorpusSearch(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)
	store, err := corpus.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), strings.Join(args, " "), cfg.MaxResults)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCorpusResults(results, jsonOutput)
}

func formatCorpusResults(results []types.Snippet, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-60s  %s\n", "Rank", "Snippet", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		text := r.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		title := r.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-60s  %s\n", i+1, text, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus to YAML or JSON",
	Long: `Export writes every indexed snippet to <corpus-dir>/index/export.yaml
or export.json. The YAML export uses the same layout as a source file, so it
can be copied back into sources/.`,
	RunE: runCorpusExport,
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background())
	case "json":
		path, err = store.ExportJSON(context.Background())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

// corpusConfig reads the corpus flags, falling back to the config file.
func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	corpusDir, _ := cmd.Flags().GetString("corpus-dir")
	if corpusDir == "" {
		corpusDir = viper.GetString("corpus.corpus_dir")
	}
	if corpusDir == "" {
		corpusDir = "corpus"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("corpus.max_results")
	}

	return types.CorpusConfig{
		CorpusDir:  corpusDir,
		MaxResults: maxResults,
	}
}

func init() {
	corpusCmd.PersistentFlags().String("corpus-dir", "", "base directory for the corpus (default: corpus)")

	corpusSearchCmd.Flags().Int("max-results", 0, "maximum results (default 20)")
	corpusSearchCmd.Flags().Bool("json", false, "output results as JSON")

	corpusExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	corpusCmd.AddCommand(corpusIngestCmd)
	corpusCmd.AddCommand(corpusSearchCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	rootCmd.AddCommand(corpusCmd)
}
