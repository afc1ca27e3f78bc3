// Package history is the session-scoped record of completed question
// cycles. Entries live in an in-memory database and vanish with the
// process; there is deliberately no persistence across sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded question cycle. Entries are append-only: no update
// or delete path exists.
type Entry struct {
	ID             int64
	AskedAt        time.Time
	Question       string
	FirstAnswer    string
	FirstReasoning string
	SecondAnswer   string
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	asked_at        INTEGER NOT NULL,
	question        TEXT NOT NULL,
	first_answer    TEXT NOT NULL,
	first_reasoning TEXT NOT NULL,
	second_answer   TEXT NOT NULL
);`

// Store keeps session history. Safe for concurrent use; every statement
// runs on the single underlying connection.
type Store struct {
	db *sql.DB
}

// Open creates the in-memory session store.
func Open(ctx context.Context) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	// Each pooled connection would get its own empty in-memory database;
	// pin everything to one.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records one completed cycle.
func (s *Store) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (asked_at, question, first_answer, first_reasoning, second_answer)
		 VALUES (?, ?, ?, ?, ?)`,
		e.AskedAt.UnixNano(), e.Question, e.FirstAnswer, e.FirstReasoning, e.SecondAnswer)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// All returns every entry in insertion order.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, asked_at, question, first_answer, first_reasoning, second_answer
		 FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var askedAt int64
		if err := rows.Scan(&e.ID, &askedAt, &e.Question, &e.FirstAnswer, &e.FirstReasoning, &e.SecondAnswer); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.AskedAt = time.Unix(0, askedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}
	return entries, nil
}

// Len reports the number of recorded entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history entries: %w", err)
	}
	return n, nil
}

// Close releases the store and its contents.
func (s *Store) Close() error {
	return s.db.Close()
}
