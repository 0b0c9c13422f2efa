// internal/store/store.go
//
// Persistence for visitors' guess records.
// A record keeps the last raw text a visitor typed for a glyph so the page
// can restore it, together with counters used by /stats and the export.
//
// Implementations:
//   - memory.go: map-backed, lost on restart (default).
//   - sqlite.go: SQLite file with embedded migrations (DB_PATH).

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no record exists.
var ErrNotFound = errors.New("not found")

// Outcome values stored with a record. They mirror verifier outcomes.
const (
	OutcomeEmpty   = "empty"
	OutcomeCorrect = "correct"
)

// GuessRecord is a visitor's latest guess for one glyph.
type GuessRecord struct {
	VisitorID string    `json:"visitorId"`
	Glyph     string    `json:"glyph"`
	Raw       string    `json:"raw"`
	Outcome   string    `json:"outcome"`
	Attempts  int       `json:"attempts"` // non-empty checks so far
	Solved    bool      `json:"solved"`   // latched once any check was correct
	UpdatedAt time.Time `json:"updatedAt"`
}

// GlyphStats aggregates records for one glyph.
type GlyphStats struct {
	Glyph    string `json:"glyph"`
	Visitors int    `json:"visitors"`
	Attempts int    `json:"attempts"`
	Solved   int    `json:"solved"`
}

// Store defines the persistence interface for guess records.
type Store interface {
	// Save records a check: it replaces the raw text and outcome, counts
	// the attempt unless the outcome is empty, and latches Solved.
	// Attempts, Solved and UpdatedAt on the argument are ignored.
	Save(ctx context.Context, r GuessRecord) (GuessRecord, error)

	// Get returns the record for (visitorID, glyph) or ErrNotFound.
	Get(ctx context.Context, visitorID, glyph string) (GuessRecord, error)

	// ListVisitor returns a visitor's records ordered by glyph.
	ListVisitor(ctx context.Context, visitorID string) ([]GuessRecord, error)

	// All returns every record ordered by visitor then glyph.
	All(ctx context.Context) ([]GuessRecord, error)

	// Stats aggregates records per glyph, ordered by glyph.
	Stats(ctx context.Context) ([]GlyphStats, error)

	Close() error
}

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }
