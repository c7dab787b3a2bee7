package service

import (
	"context"
	"time"

	"privatepartyy/internal/config"
	"privatepartyy/internal/models"
	"privatepartyy/internal/qr"
	"privatepartyy/internal/repository"
)

type CreateEventRequest struct {
	Title     string    `json:"title"`
	EventDate time.Time `json:"eventDate"`
	HostID    string    `json:"hostId"`
}

type EventQRResponse struct {
	JoinURL string `json:"joinUrl"`
	QRImage []byte `json:"qrImage"`
}

type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error)
	ResolveEvent(ctx context.Context, idOrToken string) (*models.Event, error)
	EventQR(ctx context.Context, eventID string) (*EventQRResponse, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	cfg       *config.Config
}

func NewEventService(eventRepo repository.EventRepository, cfg *config.Config) EventService {
	return &eventService{
		eventRepo: eventRepo,
		cfg:       cfg,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		Title:     req.Title,
		EventDate: req.EventDate,
		HostID:    req.HostID,
	}

	// id и токен генерирует репозиторий
	err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *eventService) ResolveEvent(ctx context.Context, idOrToken string) (*models.Event, error) {
	return s.eventRepo.Resolve(ctx, idOrToken)
}

func (s *eventService) EventQR(ctx context.Context, eventID string) (*EventQRResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	joinURL := qr.BuildJoinURL(s.cfg.BaseURL, event.EventID, event.Token)

	png, err := qr.EncodePNG(joinURL, 256)
	if err != nil {
		return nil, err
	}

	return &EventQRResponse{
		JoinURL: joinURL,
		QRImage: png,
	}, nil
}
