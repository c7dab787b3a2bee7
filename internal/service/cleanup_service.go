package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"privatepartyy/internal/repository"
	"privatepartyy/internal/storage"
)

type CleanupResult struct {
	DeletedCount    int      `json:"deletedCount"`
	DeletedEventIDs []string `json:"deletedEventIds"`
}

type CleanupService interface {
	CleanupExpired(ctx context.Context, maxAgeHours int) (*CleanupResult, error)
}

type cleanupService struct {
	eventRepo repository.EventRepository
	postRepo  repository.PostRepository
	storage   storage.Storage
	log       zerolog.Logger
	now       func() time.Time
}

func NewCleanupService(eventRepo repository.EventRepository, postRepo repository.PostRepository, storage storage.Storage, log zerolog.Logger) CleanupService {
	return &cleanupService{
		eventRepo: eventRepo,
		postRepo:  postRepo,
		storage:   storage,
		log:       log,
		now:       time.Now,
	}
}

// CleanupExpired удаляет события старше maxAgeHours вместе с их объектами в
// хранилище. Удаление объектов и удаление строк последовательны, не
// транзакционны: сбой удаления из хранилища логируется и НЕ останавливает
// удаление строк - осиротевший объект лучше вечно неудаляемой строки
func (s *cleanupService) CleanupExpired(ctx context.Context, maxAgeHours int) (*CleanupResult, error) {
	cutoff := s.now().Add(-time.Duration(maxAgeHours) * time.Hour)

	events, err := s.eventRepo.ListExpired(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	result := &CleanupResult{DeletedEventIDs: []string{}}

	if len(events) == 0 {
		s.log.Info().Msg("нет устаревших событий для удаления")
		return result, nil
	}

	eventIDs := make([]string, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.EventID)
	}

	paths, err := s.postRepo.ListStoragePathsByEventIDs(ctx, eventIDs)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось собрать пути объектов для очистки")
	}

	if len(paths) > 0 {
		if err := s.storage.DeleteObjects(ctx, paths); err != nil {
			s.log.Warn().
				Int("paths", len(paths)).
				Err(err).
				Msg("не удалось удалить объекты из хранилища, продолжаем удаление строк")
		}
	}

	for _, event := range events {
		if err := s.eventRepo.Delete(ctx, event.EventID); err != nil {
			s.log.Error().
				Str("event_id", event.EventID).
				Err(err).
				Msg("не удалось удалить устаревшее событие")
			continue
		}

		result.DeletedCount++
		result.DeletedEventIDs = append(result.DeletedEventIDs, event.EventID)

		s.log.Info().
			Str("event_id", event.EventID).
			Time("event_date", event.EventDate).
			Msg("устаревшее событие удалено")
	}

	s.log.Info().
		Int("deleted", result.DeletedCount).
		Msg("очистка завершена")

	return result, nil
}
