// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-crafter/internal/artifact"
	"github.com/pdiddy/content-crafter/internal/corpus"
	"github.com/pdiddy/content-crafter/internal/generate"
	"github.com/pdiddy/content-crafter/internal/pipeline"
	"github.com/pdiddy/content-crafter/internal/search"
	"github.com/pdiddy/content-crafter/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [topic...]",
	Short: "Generate a blog post for a topic",
	Long: `Run researches the topic, builds an outline and drafts the article,
printing the Markdown to stdout and progress to stderr. Without a topic the
built-in demo topic is used. The canned backend and search provider need no
network access or API keys.

The command exits non-zero when no article could be drafted.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	f := runCmd.Flags()
	f.String("backend", string(types.BackendCanned), "generation backend: canned, claude, or openai")
	f.String("model", "", "model identifier (default depends on backend)")
	f.String("api-key", "", "generation API key (default from .secrets/)")
	f.String("base-url", "", "OpenAI-compatible endpoint for the openai backend")
	f.Int("max-retries", 0, "retries for failed generation calls")
	f.Int("max-tokens", 0, "maximum tokens per generation (default 4096)")
	f.String("search", string(types.SearchCanned), "search provider: canned, tavily, duckduckgo, arxiv, corpus, or none")
	f.String("search-key", "", "search API key (default from .secrets/)")
	f.String("search-depth", "basic", "tavily search depth: basic or advanced")
	f.Float64("search-rate", 0, "maximum search queries per second (0 = provider default)")
	f.Int("max-snippets", 5, "maximum search snippets per query")
	f.Duration("timeout", 0, "HTTP request timeout (default 120s)")
	f.String("corpus-dir", "corpus", "base directory for the local corpus")
	f.String("output-dir", "", "directory for the article and run record (empty = do not write)")
	f.Bool("render", false, "render the article for the terminal")
	f.Bool("json", false, "print the full run result as JSON")
	f.Bool("quiet", false, "suppress progress output")

	bindFlags(f)

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		topic = pipeline.DefaultTopic
	}

	var progress io.Writer = os.Stderr
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		progress = io.Discard
	}

	client := &http.Client{Timeout: cfg.Search.Timeout}

	gen, err := generate.New(cfg.Generation, client, pipeline.DemoGenerator())
	if err != nil {
		return err
	}

	var index search.CorpusIndex
	if cfg.Search.Provider == types.SearchCorpus {
		store, err := corpus.NewStore(cfg.Corpus)
		if err != nil {
			return err
		}
		defer store.Close()
		index = store
	}

	searcher, err := search.New(cfg.Search, client, pipeline.DemoSnippets(), index)
	if err != nil {
		return err
	}

	crafter, err := pipeline.New(gen, searcher, progress)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := crafter.Run(ctx, topic)

	if cfg.Output.OutputDir != "" {
		paths, err := artifact.Save(cfg.Output.OutputDir, res, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save run: %v\n", err)
		} else {
			fmt.Fprintf(progress, "Saved %s and %s\n", paths.Article, paths.Record)
		}
	}

	if err := printResult(res, cmd, cfg.Output.Render); err != nil {
		return err
	}

	if res.Draft.Failed() {
		return fmt.Errorf("no article drafted: %s", res.Draft.Reason)
	}
	return nil
}

func printResult(res pipeline.Result, cmd *cobra.Command, render bool) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	text := res.Text()
	if render && !res.Draft.Failed() {
		fmt.Print(renderMarkdown(text))
		return nil
	}
	fmt.Println(text)
	return nil
}
