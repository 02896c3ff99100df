package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/forgelab/gamegen-go/internal/spec"
)

// SQLiteDB implements DB on a single sqlite file. Documents are stored as
// JSON blobs alongside the metadata columns the listing queries need.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the database at path and switches it to WAL
// mode. Call Migrate before first use.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema. Idempotent.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS specs (
			code TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			genre TEXT NOT NULL,
			name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			document TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_specs_created_at ON specs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_specs_genre ON specs(genre)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveSpec stores the document keyed by its seed code. Saving the same code
// twice is a no-op rather than an error: a replayed code regenerates an
// identical document, so the stored copy is already correct.
func (s *SQLiteDB) SaveSpec(doc *spec.GameSpecification) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode spec: %w", err)
	}

	query := `INSERT INTO specs (code, id, genre, name, seed, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO NOTHING`

	_, err = s.db.Exec(query,
		doc.SeedCode, doc.ID, string(doc.Genre), doc.Name, doc.Seed, string(body),
	)
	return err
}

// GetSpecByCode returns the stored document for a code, or ErrNotFound.
func (s *SQLiteDB) GetSpecByCode(code string) (*spec.GameSpecification, error) {
	var body string
	err := s.db.QueryRow(`SELECT document FROM specs WHERE code = ?`, code).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc spec.GameSpecification
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode spec %q: %w", code, err)
	}
	return &doc, nil
}

// ListRecent returns metadata for the most recently stored specifications,
// newest first.
func (s *SQLiteDB) ListRecent(limit int) ([]Meta, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`SELECT code, id, genre, name, seed, created_at
		FROM specs ORDER BY created_at DESC, code DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.Code, &m.ID, &m.Genre, &m.Name, &m.Seed, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
