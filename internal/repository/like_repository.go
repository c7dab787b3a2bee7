package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"privatepartyy/internal/models"
)

type LikeRepositoryImpl struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) *LikeRepositoryImpl {
	return &LikeRepositoryImpl{db: db}
}

// Create вставляет лайк; уникальность пары (post_id, user_id) гарантирует
// ограничение в БД, повтор превращается в ошибку "уже существует"
func (r *LikeRepositoryImpl) Create(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (post_id, user_id, created_at)
		VALUES (:post_id, :user_id, :created_at)
	`

	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, like)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("лайк уже существует: %w", err)
		}
		return fmt.Errorf("ошибка при создании лайка: %w", err)
	}

	return nil
}

func (r *LikeRepositoryImpl) Delete(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("лайк не найден")
	}

	return nil
}

func (r *LikeRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Like, error) {
	query := `SELECT * FROM likes WHERE post_id = $1 ORDER BY created_at`

	var likes []models.Like
	err := r.db.SelectContext(ctx, &likes, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайков: %w", err)
	}

	return likes, nil
}
