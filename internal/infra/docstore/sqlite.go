// SQLite FTS5 retrieval backend. Documents live in a single FTS5 virtual
// table; queries run through MATCH with bm25 ranking. Raw SQL throughout;
// the schema is one virtual table.
package docstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
)

// SQLiteStore is a keyword document index backed by SQLite FTS5.
type SQLiteStore struct {
	db   *sql.DB
	topK int
}

// OpenSQLite opens (creating if needed) the index at path. Use ":memory:"
// for an ephemeral index.
func OpenSQLite(path string, topK int) (*SQLiteStore, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite index: %w", err)
	}
	const schema = `CREATE VIRTUAL TABLE IF NOT EXISTS document_fts USING fts5(content, source_type)`
	if _, err := db.Exec(schema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("create document_fts: %w", err)
	}
	return &SQLiteStore{db: db, topK: topK}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Add indexes documents. The bulk chunk-and-embed job is external; this is
// the minimal write path it uses.
func (s *SQLiteStore) Add(ctx context.Context, docs ...retrieval.Document) error {
	for _, d := range docs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO document_fts (content, source_type) VALUES (?, ?)`,
			d.Content, string(d.Source))
		if err != nil {
			return fmt.Errorf("index document: %w", err)
		}
	}
	return nil
}

// Retrieve runs an FTS5 MATCH ordered by bm25. FTS5 rejects some query
// syntax (stray quotes, operators) with an error; treated as no results,
// since a query the index cannot parse matches nothing.
func (s *SQLiteStore) Retrieve(ctx context.Context, query string) ([]retrieval.Document, error) {
	const q = `
		SELECT content, source_type, bm25(document_fts) AS score
		FROM document_fts
		WHERE document_fts MATCH ?
		ORDER BY bm25(document_fts)
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, query, s.topK)
	if err != nil {
		return nil, nil //nolint:nilerr
	}
	defer rows.Close() //nolint:errcheck

	var docs []retrieval.Document
	for rows.Next() {
		var (
			d     retrieval.Document
			src   string
			score float64
		)
		if scanErr := rows.Scan(&d.Content, &src, &score); scanErr != nil {
			return nil, fmt.Errorf("scan document: %w", scanErr)
		}
		d.Source = retrieval.SourceType(src)
		// bm25() returns negative values, lower = better; negate so higher = better.
		d.Score = -score
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
