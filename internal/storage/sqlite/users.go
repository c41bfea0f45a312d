package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Oxyrus/keepsake/internal/storage"
)

type userRepository struct {
	db *sql.DB
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (storage.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, nickname, created_at
		FROM users
		WHERE id = ?`,
		id,
	)

	var (
		user         storage.User
		createdAtRaw time.Time
	)

	err := row.Scan(&user.ID, &user.Nickname, &createdAtRaw)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("sqlite: get user: %w", err)
	}

	user.CreatedAt = createdAtRaw.UTC()

	return user, nil
}

func (r *userRepository) Upsert(ctx context.Context, id int64, nickname string) (storage.User, error) {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, nickname, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET nickname = excluded.nickname`,
		id,
		nickname,
		now,
	)
	if err != nil {
		return storage.User{}, fmt.Errorf("sqlite: upsert user: %w", err)
	}

	return r.GetByID(ctx, id)
}
