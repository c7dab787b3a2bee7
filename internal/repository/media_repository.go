package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"privatepartyy/internal/models"
)

type MediaRepositoryImpl struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepositoryImpl {
	return &MediaRepositoryImpl{db: db}
}

func (r *MediaRepositoryImpl) Create(ctx context.Context, item *models.MediaItem) error {
	query := `
		INSERT INTO media_items (media_id, post_id, type, storage_path, display_order, created_at)
		VALUES (:media_id, :post_id, :type, :storage_path, :display_order, :created_at)
	`

	if item.MediaID == "" {
		item.MediaID = uuid.New().String()
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("ошибка при создании медиа: %w", err)
	}

	return nil
}

func (r *MediaRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.MediaItem, error) {
	query := `SELECT * FROM media_items WHERE post_id = $1 ORDER BY display_order`

	var items []models.MediaItem
	err := r.db.SelectContext(ctx, &items, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении медиа поста: %w", err)
	}

	return items, nil
}

func (r *MediaRepositoryImpl) DeleteByPostID(ctx context.Context, postID string) error {
	query := `DELETE FROM media_items WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении медиа поста: %w", err)
	}

	return nil
}
