package repository

import (
	"context"
	"privatepartyy/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, eventID string) (*models.Event, error)
	GetByToken(ctx context.Context, token string) (*models.Event, error)
	Resolve(ctx context.Context, idOrToken string) (*models.Event, error)
	Delete(ctx context.Context, eventID string) error
	ListExpired(ctx context.Context, cutoff time.Time) ([]models.Event, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByEventID(ctx context.Context, eventID string) ([]models.Post, error)
	Delete(ctx context.Context, postID string) error
	IncrementLikeCount(ctx context.Context, postID string, delta int) error
	IncrementCommentCount(ctx context.Context, postID string, delta int) error
	ListStoragePathsByEventIDs(ctx context.Context, eventIDs []string) ([]string, error)
}

type MediaRepository interface {
	Create(ctx context.Context, item *models.MediaItem) error
	GetByPostID(ctx context.Context, postID string) ([]models.MediaItem, error)
	DeleteByPostID(ctx context.Context, postID string) error
}

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, postID, userID string) error
	GetByPostID(ctx context.Context, postID string) ([]models.Like, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
}

type DMRepository interface {
	CreateThread(ctx context.Context, thread *models.DMThread) error
	GetThreadByID(ctx context.Context, threadID string) (*models.DMThread, error)
	GetThreadByParticipants(ctx context.Context, eventID, participant1, participant2 string) (*models.DMThread, error)
	GetThreadsByEvent(ctx context.Context, eventID, userID string) ([]models.DMThread, error)
	CreateMessage(ctx context.Context, message *models.DMMessage) error
	GetMessagesByThreadID(ctx context.Context, threadID string) ([]models.DMMessage, error)
}

type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Repository struct {
	Event   EventRepository
	Post    PostRepository
	Media   MediaRepository
	Like    LikeRepository
	Comment CommentRepository
	DM      DMRepository
	User    UserRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Event:   NewEventRepository(db),
		Post:    NewPostRepository(db),
		Media:   NewMediaRepository(db),
		Like:    NewLikeRepository(db),
		Comment: NewCommentRepository(db),
		DM:      NewDMRepository(db),
		User:    NewUserRepository(db),
	}
}
