package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"privatepartyy/internal/models"
)

type DMRepositoryImpl struct {
	db *sqlx.DB
}

func NewDMRepository(db *sqlx.DB) *DMRepositoryImpl {
	return &DMRepositoryImpl{db: db}
}

// CreateThread вставляет тред; участники должны быть каноничны (participant1 < participant2),
// дубликат пары ловится уникальным ограничением (event_id, participant1, participant2)
func (r *DMRepositoryImpl) CreateThread(ctx context.Context, thread *models.DMThread) error {
	query := `
		INSERT INTO dm_threads (thread_id, event_id, participant1, participant2, message_count, last_message_at, created_at)
		VALUES (:thread_id, :event_id, :participant1, :participant2, :message_count, :last_message_at, :created_at)
	`

	if thread.ThreadID == "" {
		thread.ThreadID = uuid.New().String()
	}

	now := time.Now()
	if thread.CreatedAt.IsZero() {
		thread.CreatedAt = now
	}
	if thread.LastMessageAt.IsZero() {
		thread.LastMessageAt = now
	}

	_, err := r.db.NamedExecContext(ctx, query, thread)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("тред для этой пары участников уже существует: %w", err)
		}
		return fmt.Errorf("ошибка при создании треда: %w", err)
	}

	return nil
}

func (r *DMRepositoryImpl) GetThreadByID(ctx context.Context, threadID string) (*models.DMThread, error) {
	query := `SELECT * FROM dm_threads WHERE thread_id = $1`

	var thread models.DMThread
	err := r.db.GetContext(ctx, &thread, query, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("тред с ID %s не найден", threadID)
		}
		return nil, fmt.Errorf("ошибка при получении треда: %w", err)
	}

	return &thread, nil
}

func (r *DMRepositoryImpl) GetThreadByParticipants(ctx context.Context, eventID, participant1, participant2 string) (*models.DMThread, error) {
	query := `
		SELECT * FROM dm_threads
		WHERE event_id = $1 AND participant1 = $2 AND participant2 = $3
	`

	var thread models.DMThread
	err := r.db.GetContext(ctx, &thread, query, eventID, participant1, participant2)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("тред для этой пары участников не найден")
		}
		return nil, fmt.Errorf("ошибка при получении треда по участникам: %w", err)
	}

	return &thread, nil
}

func (r *DMRepositoryImpl) GetThreadsByEvent(ctx context.Context, eventID, userID string) ([]models.DMThread, error) {
	query := `
		SELECT * FROM dm_threads
		WHERE event_id = $1 AND (participant1 = $2 OR participant2 = $2)
		ORDER BY last_message_at DESC
	`

	var threads []models.DMThread
	err := r.db.SelectContext(ctx, &threads, query, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тредов события: %w", err)
	}

	return threads, nil
}

// CreateMessage вставляет сообщение и инкрементирует счетчик треда
// в одной транзакции
func (r *DMRepositoryImpl) CreateMessage(ctx context.Context, message *models.DMMessage) error {
	if message.MessageID == "" {
		message.MessageID = uuid.New().String()
	}

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO dm_messages (message_id, thread_id, sender_id, content, created_at)
		VALUES (:message_id, :thread_id, :sender_id, :content, :created_at)
	`

	_, err = tx.NamedExecContext(ctx, insertQuery, message)
	if err != nil {
		return fmt.Errorf("ошибка при создании сообщения: %w", err)
	}

	updateQuery := `
		UPDATE dm_threads SET
			message_count = message_count + 1,
			last_message_at = $1
		WHERE thread_id = $2
	`

	_, err = tx.ExecContext(ctx, updateQuery, message.CreatedAt, message.ThreadID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика сообщений: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *DMRepositoryImpl) GetMessagesByThreadID(ctx context.Context, threadID string) ([]models.DMMessage, error) {
	query := `SELECT * FROM dm_messages WHERE thread_id = $1 ORDER BY created_at`

	var messages []models.DMMessage
	err := r.db.SelectContext(ctx, &messages, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении сообщений треда: %w", err)
	}

	return messages, nil
}
