// Package db provides the persistence layer used by the application. It
// wraps a SQLite database holding user favorites. OAuth tokens are never
// written here; the token store is memory only and a restart forgets the
// session. Callers open a single DB instance with New and reuse it.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path, creating the file and
// schema as needed.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS favorites (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT, track_id TEXT, track_name TEXT, artist_name TEXT)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_fav_user_track ON favorites(user_id, track_id)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// Favorite represents a track saved by a user.
type Favorite struct {
	TrackID    string `json:"track_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
}

// AddFavorite inserts a track into the favorites table for userID.
// Duplicate entries for the same user and track are ignored so favorites
// remain unique.
func (db *DB) AddFavorite(ctx context.Context, userID, trackID, trackName, artistName string) error {
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO favorites(user_id, track_id, track_name, artist_name) VALUES(?, ?, ?, ?)`, userID, trackID, trackName, artistName)
	return err
}

// ListFavorites retrieves all favorites stored for userID, most recently
// saved first.
func (db *DB) ListFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := db.QueryContext(ctx, `SELECT track_id, track_name, artist_name FROM favorites WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fs := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.TrackID, &f.TrackName, &f.ArtistName); err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, rows.Err()
}

// DeleteFavorite removes a track from the user's favorites. sql.ErrNoRows is
// returned when no such favorite exists so callers can answer 404.
func (db *DB) DeleteFavorite(ctx context.Context, userID, trackID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id=? AND track_id=?`, userID, trackID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
