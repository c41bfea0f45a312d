package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Oxyrus/keepsake/internal/storage"
)

type albumPhotoRepository struct {
	db *sql.DB
}

func (r *albumPhotoRepository) Link(ctx context.Context, albumID, photoID int64) (storage.AlbumPhoto, error) {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO album_photos (album_id, photo_id, created_at)
		VALUES (?, ?, ?)`,
		albumID,
		photoID,
		now,
	)
	if err != nil {
		if mapped := mapConstraintErr(err); mapped != nil {
			return storage.AlbumPhoto{}, mapped
		}
		return storage.AlbumPhoto{}, fmt.Errorf("sqlite: link photo: %w", err)
	}

	return storage.AlbumPhoto{AlbumID: albumID, PhotoID: photoID, CreatedAt: now}, nil
}

func (r *albumPhotoRepository) Unlink(ctx context.Context, albumID, photoID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM album_photos WHERE album_id = ? AND photo_id = ?`,
		albumID,
		photoID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unlink photo: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: unlink photo: %w", err)
	}

	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (r *albumPhotoRepository) Get(ctx context.Context, albumID, photoID int64) (storage.AlbumPhoto, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT album_id, photo_id, created_at
		FROM album_photos
		WHERE album_id = ? AND photo_id = ?`,
		albumID,
		photoID,
	)
	return scanAlbumPhoto(row)
}

func (r *albumPhotoRepository) ListByAlbum(ctx context.Context, albumID int64) ([]storage.AlbumPhoto, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT album_id, photo_id, created_at
		FROM album_photos
		WHERE album_id = ?
		ORDER BY created_at, photo_id`,
		albumID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list links: %w", err)
	}
	defer rows.Close()

	var result []storage.AlbumPhoto
	for rows.Next() {
		link, err := scanAlbumPhoto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list links: %w", err)
	}

	return result, nil
}

func (r *albumPhotoRepository) ListPhotos(ctx context.Context, albumID int64, page storage.Page) ([]storage.Photo, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM album_photos WHERE album_id = ?`,
		albumID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: count album photos: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.owner_id, p.image_url, p.caption, p.taken_at, p.created_at
		FROM photos p
		JOIN album_photos ap ON ap.photo_id = p.id
		WHERE ap.album_id = ?
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`,
		albumID,
		page.Limit(),
		page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: list album photos: %w", err)
	}
	defer rows.Close()

	photos, err := collectPhotos(rows)
	if err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

type albumPhotoScanner interface {
	Scan(dest ...any) error
}

func scanAlbumPhoto(s albumPhotoScanner) (storage.AlbumPhoto, error) {
	var (
		link         storage.AlbumPhoto
		createdAtRaw time.Time
	)

	err := s.Scan(&link.AlbumID, &link.PhotoID, &createdAtRaw)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.AlbumPhoto{}, storage.ErrNotFound
		}
		return storage.AlbumPhoto{}, fmt.Errorf("sqlite: scan link: %w", err)
	}

	link.CreatedAt = createdAtRaw.UTC()

	return link, nil
}
