// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/shroom-run/internal/replay"
)

// ErrNotFound is returned when no replay has the requested ID.
var ErrNotFound = errors.New("storage: replay not found")

// DefaultPath is where the CLI keeps its archive.
const DefaultPath = "~/.shroomrun/replays.db"

// Store manages the SQLite database connection for the replay archive.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the listing row of a stored replay. The document itself is
// loaded with Store.Replay.
type ReplayEntry struct {
	ID        int64
	Name      string
	Seed      int64
	Preset    string
	TickRate  int
	Ticks     int
	Checksum  string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			document TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_replays_name ON replays(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay under the given name and returns its ID.
// An empty name keeps the one recorded in the document.
func (s *Store) SaveReplay(name string, r *replay.Replay) (int64, error) {
	if name != "" {
		named := *r
		named.Name = name
		r = &named
	}
	if r.Name == "" {
		return 0, errors.New("storage: replay name is required")
	}

	doc, err := replay.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (name, seed, preset, tick_rate, ticks, checksum, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Seed, r.Preset, r.TickRate, r.Ticks, r.Checksum, string(doc),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Replay loads and decodes the replay with the given ID.
func (s *Store) Replay(id int64) (*replay.Replay, error) {
	var doc string
	err := s.db.QueryRow("SELECT document FROM replays WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r, err := replay.Unmarshal([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("storage: replay %d is corrupt: %w", id, err)
	}
	return r, nil
}

// RecentReplays lists the newest replays first.
func (s *Store) RecentReplays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, seed, preset, tick_rate, ticks, checksum, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Seed, &e.Preset, &e.TickRate, &e.Ticks, &e.Checksum, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes the replay with the given ID.
func (s *Store) DeleteReplay(id int64) error {
	result, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
