package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Oxyrus/keepsake/internal/storage"
)

type photoRepository struct {
	db *sql.DB
}

func (r *photoRepository) Create(ctx context.Context, input storage.PhotoCreate) (storage.Photo, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (owner_id, image_url, caption, taken_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		input.OwnerID,
		input.ImageURL,
		input.Caption,
		input.TakenAt.UTC(),
		now,
	)
	if err != nil {
		return storage.Photo{}, fmt.Errorf("sqlite: create photo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.Photo{}, fmt.Errorf("sqlite: create photo: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *photoRepository) GetByID(ctx context.Context, id int64) (storage.Photo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, image_url, caption, taken_at, created_at
		FROM photos
		WHERE id = ?`,
		id,
	)
	return scanPhoto(row)
}

func (r *photoRepository) ListByOwner(ctx context.Context, ownerID int64, page storage.Page) ([]storage.Photo, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM photos WHERE owner_id = ?`,
		ownerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: count photos: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, image_url, caption, taken_at, created_at
		FROM photos
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		ownerID,
		page.Limit(),
		page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: list photos: %w", err)
	}
	defer rows.Close()

	photos, err := collectPhotos(rows)
	if err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

func (r *photoRepository) UpdateCaption(ctx context.Context, id int64, caption string) (storage.Photo, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE photos SET caption = ? WHERE id = ?`,
		caption,
		id,
	)
	if err != nil {
		return storage.Photo{}, fmt.Errorf("sqlite: update caption: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return storage.Photo{}, fmt.Errorf("sqlite: update caption: %w", err)
	}

	if rowsAffected == 0 {
		return storage.Photo{}, storage.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *photoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete photo: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete photo: %w", err)
	}

	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

type photoScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(s photoScanner) (storage.Photo, error) {
	var (
		photo        storage.Photo
		takenAtRaw   time.Time
		createdAtRaw time.Time
	)

	err := s.Scan(
		&photo.ID,
		&photo.OwnerID,
		&photo.ImageURL,
		&photo.Caption,
		&takenAtRaw,
		&createdAtRaw,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.Photo{}, storage.ErrNotFound
		}
		return storage.Photo{}, fmt.Errorf("sqlite: scan photo: %w", err)
	}

	photo.TakenAt = takenAtRaw.UTC()
	photo.CreatedAt = createdAtRaw.UTC()

	return photo, nil
}

func collectPhotos(rows *sql.Rows) ([]storage.Photo, error) {
	var result []storage.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: collect photos: %w", err)
	}

	return result, nil
}
