// Package store persists generated specifications keyed by seed code, so a
// shared code replays the exact document it was minted for.
package store

import (
	"errors"
	"time"

	"github.com/forgelab/gamegen-go/internal/spec"
)

// ErrNotFound is returned when no specification exists for a code.
var ErrNotFound = errors.New("store: spec not found")

// DB is the persistence interface the API serves from.
type DB interface {
	Close() error
	Migrate() error
	SaveSpec(s *spec.GameSpecification) error
	GetSpecByCode(code string) (*spec.GameSpecification, error)
	ListRecent(limit int) ([]Meta, error)
}

// Meta is the listing row for a stored specification: enough to render an
// index without unmarshaling documents.
type Meta struct {
	Code      string    `json:"code"`
	ID        string    `json:"id"`
	Genre     string    `json:"genre"`
	Name      string    `json:"name"`
	Seed      uint32    `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}
