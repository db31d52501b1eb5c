// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus keeps a local, full-text indexed collection of snippets so
// the research stage can be grounded without a network search provider.
//
// Snippets are authored as YAML files under <corpus-dir>/sources/ and
// indexed into a SQLite database with FTS5 at <corpus-dir>/index/corpus.db.
// The FTS5 module must be compiled in (build tag sqlite_fts5).
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-crafter/pkg/types"
)

const (
	sourcesDir = "sources"
	indexDir   = "index"
	dbFile     = "corpus.db"
)

// SourceFile is the YAML layout of one file under sources/.
type SourceFile struct {
	Snippets []types.Snippet `json:"snippets" yaml:"snippets"`
}

// Store manages the corpus SQLite database.
type Store struct {
	db         *sql.DB
	corpusDir  string
	maxResults int
}

// NewStore opens or creates the corpus database at
// corpusDir/index/corpus.db and creates the schema if it does not exist.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CorpusDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		corpusDir:  cfg.CorpusDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS snippets (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id TEXT NOT NULL REFERENCES sources(id),
			text TEXT NOT NULL,
			title TEXT,
			url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snippets_source_id ON snippets(source_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='snippets_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE snippets_fts USING fts5(text, title, content=snippets, content_rowid=rowid)`,
			`CREATE TRIGGER snippets_ai AFTER INSERT ON snippets BEGIN
				INSERT INTO snippets_fts(rowid, text, title) VALUES (new.rowid, new.text, new.title);
			END`,
			`CREATE TRIGGER snippets_ad AFTER DELETE ON snippets BEGIN
				INSERT INTO snippets_fts(snippets_fts, rowid, text, title) VALUES('delete', old.rowid, old.text, old.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a corpus indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of source files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads every YAML file in corpusDir/sources/ and indexes its
// snippets. Files whose modification time matches the last indexing run
// are skipped; changed files replace their previous snippets.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	srcDir := filepath.Join(s.corpusDir, sourcesDir)

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading sources directory %s: %w", srcDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		sourceID := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", sourceID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM sources WHERE id = ?`, sourceID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", sourceID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(srcDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", sourceID, err)
			summary.Failed++
			continue
		}

		var file SourceFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", sourceID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestSource(ctx, sourceID, file.Snippets, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", sourceID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d snippets)\n", sourceID, len(file.Snippets))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d snippets)\n", sourceID, len(file.Snippets))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestSource(ctx context.Context, sourceID string, snippets []types.Snippet, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snippets WHERE source_id = ?`, sourceID); err != nil {
			return fmt.Errorf("deleting old snippets: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		sourceID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating source status: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snippets (source_id, text, title, url) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, sn := range snippets {
		if strings.TrimSpace(sn.Text) == "" {
			return fmt.Errorf("snippet %d: empty text", i)
		}
		if _, err := stmt.ExecContext(ctx, sourceID, sn.Text, sn.Title, sn.URL); err != nil {
			return fmt.Errorf("inserting snippet %d: %w", i, err)
		}
	}

	return tx.Commit()
}
