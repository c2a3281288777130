// Package analysis aggregates screen read-count scores: pairwise condition
// comparisons and normalization against negative controls. Tables live in
// DuckDB so the arithmetic stays in SQL and CSV ingest/export is free.
package analysis

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding screen score tables.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// LoadCSV loads a CSV file into a table, replacing any previous contents.
// Column names and types are inferred from the file.
func (s *Store) LoadCSV(table, path string) error {
	q := fmt.Sprintf(`CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, header=true)`,
		quoteIdent(table), quoteString(path))
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("load %s from %s: %w", table, path, err)
	}
	return nil
}

// ExportCSV writes a table to a CSV file with a header row.
func (s *Store) ExportCSV(table, path string) error {
	q := fmt.Sprintf(`COPY %s TO %s (HEADER, DELIMITER ',')`,
		quoteIdent(table), quoteString(path))
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("export %s to %s: %w", table, path, err)
	}
	return nil
}

// RowCount returns the number of rows in a table.
func (s *Store) RowCount(table string) (int, error) {
	var n int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdent(table))
	if err := s.db.QueryRow(q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// quoteIdent quotes a SQL identifier (table or column name).
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteString quotes a SQL string literal.
func quoteString(v string) string {
	return `'` + strings.ReplaceAll(v, `'`, `''`) + `'`
}
