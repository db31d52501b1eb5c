// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/content-crafter/pkg/types"
)

// Search returns the snippets that best match query, ranked by FTS5
// relevance. Every word of the query is quoted and the words are OR-ed, so
// free text never trips FTS5 query syntax. A query without words returns
// no snippets. A non-positive limit uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Snippet, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sn.text, sn.title, sn.url
		FROM snippets_fts
		JOIN snippets sn ON sn.rowid = snippets_fts.rowid
		WHERE snippets_fts MATCH ?
		ORDER BY snippets_fts.rank
		LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

// All returns every indexed snippet ordered by source and insertion order.
func (s *Store) All(ctx context.Context) ([]types.Snippet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, title, url FROM snippets ORDER BY source_id, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing corpus: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

func scanSnippets(rows *sql.Rows) ([]types.Snippet, error) {
	var snippets []types.Snippet
	for rows.Next() {
		var (
			sn    types.Snippet
			title sql.NullString
			url   sql.NullString
		)
		if err := rows.Scan(&sn.Text, &title, &url); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		sn.Title = title.String
		sn.URL = url.String
		sn.Source = "corpus"
		snippets = append(snippets, sn)
	}
	return snippets, rows.Err()
}

// ftsQuery turns free text into an FTS5 expression: "w1" OR "w2" OR ...
func ftsQuery(query string) string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool)
	var terms []string
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, `"`+w+`"`)
	}
	return strings.Join(terms, " OR ")
}
