package service

import (
	"privatepartyy/internal/config"
	"privatepartyy/internal/repository"
	"privatepartyy/internal/storage"

	"github.com/rs/zerolog"
)

type Service struct {
	Event   EventService
	Upload  UploadService
	DM      DMService
	Cleanup CleanupService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, log zerolog.Logger) *Service {
	return &Service{
		Event:   NewEventService(rep.Event, cfg),
		Upload:  NewUploadService(rep.Post, rep.Media, storage, cfg, log),
		DM:      NewDMService(rep.DM, cfg),
		Cleanup: NewCleanupService(rep.Event, rep.Post, storage, log),
	}
}
