package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"privatepartyy/internal/models"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) GetByToken(ctx context.Context, token string) (*models.Event, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) Resolve(ctx context.Context, idOrToken string) (*models.Event, error) {
	args := m.Called(ctx, idOrToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByEventID(ctx context.Context, eventID string) ([]models.Post, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementLikeCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementCommentCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockPostRepository) ListStoragePathsByEventIDs(ctx context.Context, eventIDs []string) ([]string, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, item *models.MediaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMediaRepository) GetByPostID(ctx context.Context, postID string) ([]models.MediaItem, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func (m *MockMediaRepository) DeleteByPostID(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockDMRepository struct {
	mock.Mock
}

func (m *MockDMRepository) CreateThread(ctx context.Context, thread *models.DMThread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockDMRepository) GetThreadByID(ctx context.Context, threadID string) (*models.DMThread, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DMThread), args.Error(1)
}

func (m *MockDMRepository) GetThreadByParticipants(ctx context.Context, eventID, participant1, participant2 string) (*models.DMThread, error) {
	args := m.Called(ctx, eventID, participant1, participant2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DMThread), args.Error(1)
}

func (m *MockDMRepository) GetThreadsByEvent(ctx context.Context, eventID, userID string) ([]models.DMThread, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DMThread), args.Error(1)
}

func (m *MockDMRepository) CreateMessage(ctx context.Context, message *models.DMMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockDMRepository) GetMessagesByThreadID(ctx context.Context, threadID string) ([]models.DMMessage, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DMMessage), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadObject(ctx context.Context, objectName, contentType string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, objectName, contentType, file, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) DeleteObjects(ctx context.Context, objectNames []string) error {
	args := m.Called(ctx, objectNames)
	return args.Error(0)
}

func (m *MockStorage) PresignedUploadURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

func (m *MockStorage) URLExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
