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

type EventRepositoryImpl struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (event_id, token, title, event_date, host_id, attendee_count, created_at)
		VALUES (:event_id, :token, :title, :event_date, :host_id, :attendee_count, :created_at)
	`

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}

	if event.Token == "" {
		event.Token = strings.ReplaceAll(uuid.New().String(), "-", "")
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("токен события уже используется: %w", err)
		}
		return fmt.Errorf("ошибка при создании события: %w", err)
	}

	return nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	query := `SELECT * FROM events WHERE event_id = $1`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("событие с ID %s не найдено", eventID)
		}
		return nil, fmt.Errorf("ошибка при получении события: %w", err)
	}

	return &event, nil
}

func (r *EventRepositoryImpl) GetByToken(ctx context.Context, token string) (*models.Event, error) {
	query := `SELECT * FROM events WHERE token = $1`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("событие с токеном %s не найдено", token)
		}
		return nil, fmt.Errorf("ошибка при получении события по токену: %w", err)
	}

	return &event, nil
}

// Resolve принимает UUID события или join-токен и возвращает событие.
// Вход в форме UUID ищется по event_id, любой другой - по токену.
func (r *EventRepositoryImpl) Resolve(ctx context.Context, idOrToken string) (*models.Event, error) {
	if _, err := uuid.Parse(idOrToken); err == nil {
		return r.GetByID(ctx, idOrToken)
	}

	return r.GetByToken(ctx, idOrToken)
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, eventID string) error {
	query := `DELETE FROM events WHERE event_id = $1`

	result, err := r.db.ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении события: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("событие не найдено")
	}

	return nil
}

func (r *EventRepositoryImpl) ListExpired(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	query := `SELECT * FROM events WHERE event_date < $1 ORDER BY event_date`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении устаревших событий: %w", err)
	}

	return events, nil
}
