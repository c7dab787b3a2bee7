package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"privatepartyy/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, event_id, author_id, author_name, type, content, storage_path, like_count, comment_count, created_at)
        VALUES
        (:post_id, :event_id, :author_id, :author_name, :type, :content, :storage_path, :like_count, :comment_count, :created_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s не найден", postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// GetByEventID возвращает посты только указанного события
func (r *PostRepositoryImpl) GetByEventID(ctx context.Context, eventID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE event_id = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов события: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден")
	}

	return nil
}

func (r *PostRepositoryImpl) IncrementLikeCount(ctx context.Context, postID string, delta int) error {
	query := `UPDATE posts SET like_count = GREATEST(like_count + $1, 0) WHERE post_id = $2`

	_, err := r.db.ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика лайков: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) IncrementCommentCount(ctx context.Context, postID string, delta int) error {
	query := `UPDATE posts SET comment_count = GREATEST(comment_count + $1, 0) WHERE post_id = $2`

	_, err := r.db.ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика комментариев: %w", err)
	}

	return nil
}

// ListStoragePathsByEventIDs собирает пути объектов постов и медиа для событий,
// чтобы задание очистки могло удалить их одним пакетом
func (r *PostRepositoryImpl) ListStoragePathsByEventIDs(ctx context.Context, eventIDs []string) ([]string, error) {
	query := `
		SELECT storage_path FROM posts
		WHERE event_id = ANY($1) AND storage_path <> ''
		UNION
		SELECT mi.storage_path FROM media_items mi
		JOIN posts p ON p.post_id = mi.post_id
		WHERE p.event_id = ANY($1)
	`

	var paths []string
	err := r.db.SelectContext(ctx, &paths, query, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении путей хранилища: %w", err)
	}

	return paths, nil
}
