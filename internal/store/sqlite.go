// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Upserting guess records and aggregating per-glyph stats.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and applies
// the migrations found in migrations.
func OpenSQLite(dsn string, migrations fs.FS) (Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB opens a SQLite database file.
//
//   - Ensures parent directory exists for relative DSNs (e.g. ./data/app.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from fsys in lexical order.
//
//   - Uses a _migrations table to track applied files.
//   - Skips files already applied.
//   - Runs scripts that manage their own transaction (BEGIN TRANSACTION or
//     PRAGMA FOREIGN_KEYS=OFF) outside of an outer transaction.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		sqlText := string(b)

		upper := strings.ToUpper(sqlText)
		selfManaged := strings.Contains(upper, "BEGIN TRANSACTION") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")

		if selfManaged {
			if _, err := db.Exec(sqlText); err != nil {
				return fmt.Errorf("apply %s: %w", f, err)
			}
			if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
				return fmt.Errorf("record %s: %w", f, err)
			}
			log.Info().Str("migration", f).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(sqlText); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, r GuessRecord) (GuessRecord, error) {
	attempt, solved := 1, 0
	if r.Outcome == OutcomeEmpty {
		attempt = 0
	}
	if r.Outcome == OutcomeCorrect {
		solved = 1
	}
	ts := now().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO guess_records (visitor_id, glyph, raw, outcome, attempts, solved, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(visitor_id, glyph) DO UPDATE SET
            raw        = excluded.raw,
            outcome    = excluded.outcome,
            attempts   = guess_records.attempts + excluded.attempts,
            solved     = MAX(guess_records.solved, excluded.solved),
            updated_at = excluded.updated_at`,
		r.VisitorID, r.Glyph, r.Raw, r.Outcome, attempt, solved, ts,
	)
	if err != nil {
		return GuessRecord{}, fmt.Errorf("save guess: %w", err)
	}
	return s.Get(ctx, r.VisitorID, r.Glyph)
}

const recordColumns = `visitor_id, glyph, raw, outcome, attempts, solved, updated_at`

func (s *sqliteStore) Get(ctx context.Context, visitorID, glyph string) (GuessRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM guess_records WHERE visitor_id=? AND glyph=?`,
		visitorID, glyph)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GuessRecord{}, ErrNotFound
	}
	return r, err
}

func (s *sqliteStore) ListVisitor(ctx context.Context, visitorID string) ([]GuessRecord, error) {
	return s.query(ctx,
		`SELECT `+recordColumns+` FROM guess_records WHERE visitor_id=? ORDER BY glyph`, visitorID)
}

func (s *sqliteStore) All(ctx context.Context) ([]GuessRecord, error) {
	return s.query(ctx, `SELECT `+recordColumns+` FROM guess_records ORDER BY visitor_id, glyph`)
}

func (s *sqliteStore) query(ctx context.Context, q string, args ...any) ([]GuessRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GuessRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Stats(ctx context.Context) ([]GlyphStats, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT glyph, COUNT(1), COALESCE(SUM(attempts), 0), COALESCE(SUM(solved), 0)
        FROM guess_records
        GROUP BY glyph
        ORDER BY glyph`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GlyphStats{}
	for rows.Next() {
		var g GlyphStats
		if err := rows.Scan(&g.Glyph, &g.Visitors, &g.Attempts, &g.Solved); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (GuessRecord, error) {
	var r GuessRecord
	var solved int
	var updated string
	if err := sc.Scan(&r.VisitorID, &r.Glyph, &r.Raw, &r.Outcome, &r.Attempts, &solved, &updated); err != nil {
		return GuessRecord{}, err
	}
	r.Solved = solved != 0
	r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return r, nil
}
