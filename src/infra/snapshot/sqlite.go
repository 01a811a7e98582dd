package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tunesleuth/src/music"
)

// SqliteStore persists the most recent scan catalog so serve mode can answer
// immediately after a restart. Only raw scan data is stored, analysis always
// runs fresh against the catalog.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore creates a new SqliteStore.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &SqliteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			root TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tracks (
			path TEXT PRIMARY KEY,
			file_name TEXT NOT NULL,
			size INTEGER,
			duration INTEGER,
			format TEXT,
			title TEXT,
			artist TEXT,
			album TEXT,
			album_artist TEXT,
			genre TEXT,
			year INTEGER,
			track_number INTEGER,
			disc_number INTEGER
		);
	`)
	return err
}

// Save replaces the stored catalog with the given library.
func (s *SqliteStore) Save(ctx context.Context, lib *music.Library) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tracks`); err != nil {
		return fmt.Errorf("failed to clear tracks: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (id, root, created_at) VALUES (1, ?, ?)`,
		lib.Root, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to store snapshot header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (path, file_name, size, duration, format,
			title, artist, album, album_artist, genre, year, track_number, disc_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range lib.Tracks {
		if _, err := stmt.ExecContext(ctx,
			t.Path, t.FileName, t.Size, t.Duration, t.Format,
			t.Tags.Title, t.Tags.Artist, t.Tags.Album, t.Tags.AlbumArtist,
			t.Tags.Genre, t.Tags.Year, t.Tags.TrackNumber, t.Tags.DiscNumber); err != nil {
			return fmt.Errorf("failed to store track %s: %w", t.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Info("Catalog snapshot saved", "tracks", len(lib.Tracks), "root", lib.Root)
	return nil
}

// Load returns the stored catalog, or sql.ErrNoRows when none exists.
func (s *SqliteStore) Load(ctx context.Context) (*music.Library, error) {
	var lib music.Library
	err := s.db.QueryRowContext(ctx, `SELECT root FROM snapshots WHERE id = 1`).Scan(&lib.Root)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, file_name, size, duration, format,
			title, artist, album, album_artist, genre, year, track_number, disc_number
		FROM tracks ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t music.Track
		if err := rows.Scan(
			&t.Path, &t.FileName, &t.Size, &t.Duration, &t.Format,
			&t.Tags.Title, &t.Tags.Artist, &t.Tags.Album, &t.Tags.AlbumArtist,
			&t.Tags.Genre, &t.Tags.Year, &t.Tags.TrackNumber, &t.Tags.DiscNumber); err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}
		lib.Tracks = append(lib.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &lib, nil
}

// Close closes the underlying database.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}
