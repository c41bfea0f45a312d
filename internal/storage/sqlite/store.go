package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "modernc.org/sqlite"

	"github.com/Oxyrus/keepsake/internal/storage"
)

// Store is a SQLite-backed implementation of the storage.Store interface.
type Store struct {
	db          *sql.DB
	photos      *photoRepository
	albums      *albumRepository
	albumPhotos *albumPhotoRepository
	users       *userRepository
}

// Open initialises (or opens) a SQLite database located at the provided path.
// The directory is created if it does not already exist. The returned Store is
// safe for concurrent use.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path must not be empty")
	}

	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("sqlite: ensure directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := configure(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := bootstrap(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:          db,
		photos:      &photoRepository{db: db},
		albums:      &albumRepository{db: db},
		albumPhotos: &albumPhotoRepository{db: db},
		users:       &userRepository{db: db},
	}, nil
}

// Photos returns the photo repository.
func (s *Store) Photos() storage.Photos {
	return s.photos
}

// Albums returns the album repository.
func (s *Store) Albums() storage.Albums {
	return s.albums
}

// AlbumPhotos returns the membership-link repository.
func (s *Store) AlbumPhotos() storage.AlbumPhotos {
	return s.albumPhotos
}

// Users returns the user-profile repository.
func (s *Store) Users() storage.Users {
	return s.users
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func configure(db *sql.DB) error {
	stmts := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA journal_mode = WAL;",
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: configure: %w", err)
		}
	}

	return nil
}

func bootstrap(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			nickname TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS photos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL,
			image_url TEXT NOT NULL,
			caption TEXT NOT NULL DEFAULT '',
			taken_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS albums (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			cover_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS album_photos (
			album_id INTEGER NOT NULL,
			photo_id INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (album_id, photo_id),
			FOREIGN KEY(album_id) REFERENCES albums(id) ON DELETE CASCADE,
			FOREIGN KEY(photo_id) REFERENCES photos(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_owner_created ON photos(owner_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_albums_owner_created ON albums(owner_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_album_photos_photo ON album_photos(photo_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: bootstrap: %w", err)
		}
	}

	return nil
}

// SQLITE_CONSTRAINT_PRIMARYKEY and SQLITE_CONSTRAINT_UNIQUE extended codes.
const (
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
)

func mapConstraintErr(err error) error {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case codeConstraintPrimaryKey, codeConstraintUnique:
			return storage.ErrConflict
		}
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
