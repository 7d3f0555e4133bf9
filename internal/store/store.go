// Package store provides the SQLite persistence layer for condition codes.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/abe-tools/gutachten-extractor/internal/gutachten"
)

// Schema for the condition_codes table.
const Schema = `
CREATE TABLE IF NOT EXISTS condition_codes (
	code TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_condition_codes_updated ON condition_codes(updated_at);
`

// Store is the condition-code database handle. It satisfies
// gutachten.CodeStore.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path, applies the schema
// and seeds the static code dictionary. Seeding never overwrites existing
// rows.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetAll returns every known condition code, ordered by code.
func (s *Store) GetAll() ([]gutachten.ConditionCode, error) {
	rows, err := s.db.Query(`SELECT code, description, updated_at FROM condition_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query codes: %w", err)
	}
	defer rows.Close()

	var entries []gutachten.ConditionCode
	for rows.Next() {
		entry, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetByCode returns one code entry, or nil when the code is unknown.
func (s *Store) GetByCode(code string) (*gutachten.ConditionCode, error) {
	row := s.db.QueryRow(`SELECT code, description, updated_at FROM condition_codes WHERE code = ?`, code)
	entry, err := scanCode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertAll writes the given entries in one transaction. A row is only
// touched when its description actually changed, so updated_at stays stable
// across idempotent re-runs.
func (s *Store) UpsertAll(entries []gutachten.ConditionCode) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO condition_codes (code, description, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			description = excluded.description,
			updated_at = excluded.updated_at
		WHERE condition_codes.description != excluded.description`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, entry := range entries {
		if _, err := stmt.Exec(entry.Code, entry.Description, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert code %s: %w", entry.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	slog.Debug("code store: upserted entries", "count", len(entries))
	return nil
}

// Delete removes one code. Deleting an unknown code is not an error.
func (s *Store) Delete(code string) error {
	_, err := s.db.Exec(`DELETE FROM condition_codes WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete code %s: %w", code, err)
	}
	return nil
}

// seed inserts the static dictionary for codes not yet present.
func (s *Store) seed() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO condition_codes (code, description, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(code) DO NOTHING`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for code, description := range gutachten.StaticCodeTexts {
		if _, err := stmt.Exec(code, description, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed code %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCode(r rowScanner) (gutachten.ConditionCode, error) {
	var entry gutachten.ConditionCode
	var updated int64
	if err := r.Scan(&entry.Code, &entry.Description, &updated); err != nil {
		if err == sql.ErrNoRows {
			return entry, err
		}
		return entry, fmt.Errorf("scan code row: %w", err)
	}
	entry.UpdatedAt = time.Unix(updated, 0)
	return entry, nil
}
