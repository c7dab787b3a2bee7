package handlers

import (
	"github.com/go-playground/validator/v10"

	"privatepartyy/internal/config"
	"privatepartyy/internal/database"
	"privatepartyy/internal/ratelimit"
	"privatepartyy/internal/repository"
	"privatepartyy/internal/service"
)

type Handlers struct {
	EventService   service.EventService
	UploadService  service.UploadService
	DMService      service.DMService
	CleanupService service.CleanupService
	EventRepo      repository.EventRepository
	PostRepo       repository.PostRepository
	MediaRepo      repository.MediaRepository
	LikeRepo       repository.LikeRepository
	CommentRepo    repository.CommentRepository
	UserRepo       repository.UserRepository
	Limiter        *ratelimit.Limiter
	DB             *database.DB
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, limiter *ratelimit.Limiter, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		EventService:   services.Event,
		UploadService:  services.Upload,
		DMService:      services.DM,
		CleanupService: services.Cleanup,
		EventRepo:      repo.Event,
		PostRepo:       repo.Post,
		MediaRepo:      repo.Media,
		LikeRepo:       repo.Like,
		CommentRepo:    repo.Comment,
		UserRepo:       repo.User,
		Limiter:        limiter,
		DB:             db,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}
