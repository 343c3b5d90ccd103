package journal

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"
)

// Journal keeps a local history of EchoNest queries using SQLite
type Journal struct {
	db *sql.DB
}

// Entry represents one recorded query
type Entry struct {
	ID          int64
	Operation   string     // e.g. "genre/similar"
	Genre       string     // Genre name the query used, if any
	Params      url.Values // Parameters the command passed to the API
	ResultCount int
	Error       string // Empty on success
	CreatedAt   time.Time
}

// Failed reports whether the query returned an error
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Open opens (or creates) the journal database at dbPath
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",  // Wait up to 5 seconds on lock
		"PRAGMA synchronous = NORMAL", // Balance between safety and performance
		"PRAGMA journal_mode = WAL",   // Write-Ahead Logging for concurrent CLI invocations
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation TEXT NOT NULL,
			genre TEXT NOT NULL DEFAULT '',
			params TEXT NOT NULL DEFAULT '',
			result_count INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_created_at ON queries(created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Add records a query and returns its id.
// A zero CreatedAt is replaced with the current time.
func (j *Journal) Add(ctx context.Context, e Entry) (int64, error) {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var errMsg sql.NullString
	if e.Error != "" {
		errMsg = sql.NullString{String: e.Error, Valid: true}
	}

	query := `
		INSERT INTO queries (operation, genre, params, result_count, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := j.db.ExecContext(ctx, query,
		e.Operation,
		e.Genre,
		e.Params.Encode(),
		e.ResultCount,
		errMsg,
		createdAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert query: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, nil
}

// Recent returns the most recent entries, newest first.
// A limit <= 0 returns every entry.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, operation, genre, params, result_count, COALESCE(error, ''), created_at
		FROM queries
		ORDER BY created_at DESC, id DESC
	`

	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var rawParams string
		var createdUnix int64

		err := rows.Scan(
			&e.ID,
			&e.Operation,
			&e.Genre,
			&rawParams,
			&e.ResultCount,
			&e.Error,
			&createdUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}

		e.Params, err = url.ParseQuery(rawParams)
		if err != nil {
			return nil, fmt.Errorf("failed to parse params of query %d: %w", e.ID, err)
		}
		e.CreatedAt = time.Unix(createdUnix, 0)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return entries, nil
}

// Count returns the number of recorded queries
func (j *Journal) Count(ctx context.Context) (int, error) {
	var count int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM queries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count queries: %w", err)
	}
	return count, nil
}

// Prune removes entries older than maxAge and returns how many were deleted
func (j *Journal) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	result, err := j.db.ExecContext(ctx, "DELETE FROM queries WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// Clear removes every entry and returns how many were deleted
func (j *Journal) Clear(ctx context.Context) (int64, error) {
	result, err := j.db.ExecContext(ctx, "DELETE FROM queries")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
