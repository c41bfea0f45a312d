package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Oxyrus/keepsake/internal/storage"
)

type albumRepository struct {
	db *sql.DB
}

func (r *albumRepository) Create(ctx context.Context, input storage.AlbumCreate) (storage.Album, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO albums (owner_id, title, cover_url, created_at)
		VALUES (?, ?, ?, ?)`,
		input.OwnerID,
		input.Title,
		input.CoverURL,
		now,
	)
	if err != nil {
		return storage.Album{}, fmt.Errorf("sqlite: create album: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.Album{}, fmt.Errorf("sqlite: create album: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *albumRepository) GetByID(ctx context.Context, id int64) (storage.Album, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, cover_url, created_at
		FROM albums
		WHERE id = ?`,
		id,
	)
	return scanAlbum(row)
}

func (r *albumRepository) ListByOwner(ctx context.Context, ownerID int64) ([]storage.Album, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, cover_url, created_at
		FROM albums
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list albums: %w", err)
	}
	defer rows.Close()

	var result []storage.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list albums: %w", err)
	}

	return result, nil
}

func (r *albumRepository) UpdateTitle(ctx context.Context, id int64, title string) (storage.Album, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE albums SET title = ? WHERE id = ?`,
		title,
		id,
	)
	if err != nil {
		return storage.Album{}, fmt.Errorf("sqlite: update album title: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return storage.Album{}, fmt.Errorf("sqlite: update album title: %w", err)
	}

	if rowsAffected == 0 {
		return storage.Album{}, storage.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *albumRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete album: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete album: %w", err)
	}

	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

type albumScanner interface {
	Scan(dest ...any) error
}

func scanAlbum(s albumScanner) (storage.Album, error) {
	var (
		album        storage.Album
		createdAtRaw time.Time
	)

	err := s.Scan(
		&album.ID,
		&album.OwnerID,
		&album.Title,
		&album.CoverURL,
		&createdAtRaw,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.Album{}, storage.ErrNotFound
		}
		return storage.Album{}, fmt.Errorf("sqlite: scan album: %w", err)
	}

	album.CreatedAt = createdAtRaw.UTC()

	return album, nil
}
