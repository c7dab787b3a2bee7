package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"privatepartyy/internal/config"
	"privatepartyy/internal/models"
	"privatepartyy/internal/repository"
)

// MaxMessageLength - максимальная длина сообщения в символах
const MaxMessageLength = 1000

type SendResult struct {
	Message      *models.DMMessage `json:"message"`
	MessageCount int               `json:"messageCount"`
	Remaining    int               `json:"remaining"`
}

type ThreadMessages struct {
	Messages     []models.DMMessage `json:"messages"`
	MessageCount int                `json:"messageCount"`
	Limit        int                `json:"limit"`
	Remaining    int                `json:"remaining"`
}

type DMService interface {
	StartThread(ctx context.Context, eventID, user1, user2 string) (*models.DMThread, error)
	ListThreads(ctx context.Context, eventID, userID string) ([]models.DMThread, error)
	ListMessages(ctx context.Context, threadID, userID string) (*ThreadMessages, error)
	TrySend(ctx context.Context, threadID, senderID, content string) (*SendResult, error)
}

type dmService struct {
	dmRepo repository.DMRepository
	cfg    *config.Config
}

func NewDMService(dmRepo repository.DMRepository, cfg *config.Config) DMService {
	return &dmService{
		dmRepo: dmRepo,
		cfg:    cfg,
	}
}

// StartThread создает тред для пары участников или возвращает существующий.
// Порядок участников канонизируется (participant1 < participant2), так что
// для одной пары в событии тред всегда один
func (s *dmService) StartThread(ctx context.Context, eventID, user1, user2 string) (*models.DMThread, error) {
	if user1 == "" || user2 == "" {
		return nil, fmt.Errorf("не указаны оба участника треда")
	}

	if user1 == user2 {
		return nil, fmt.Errorf("нельзя создать тред с самим собой")
	}

	// canonical order
	if user1 > user2 {
		user1, user2 = user2, user1
	}

	existing, err := s.dmRepo.GetThreadByParticipants(ctx, eventID, user1, user2)
	if err == nil && existing != nil {
		return existing, nil
	}

	thread := &models.DMThread{
		EventID:      eventID,
		Participant1: user1,
		Participant2: user2,
	}

	err = s.dmRepo.CreateThread(ctx, thread)
	if err != nil {
		// проиграли гонку конкурентному запросу - тред уже есть, забираем его
		if strings.Contains(err.Error(), "уже существует") {
			return s.dmRepo.GetThreadByParticipants(ctx, eventID, user1, user2)
		}
		return nil, err
	}

	return thread, nil
}

func (s *dmService) ListThreads(ctx context.Context, eventID, userID string) ([]models.DMThread, error) {
	return s.dmRepo.GetThreadsByEvent(ctx, eventID, userID)
}

func (s *dmService) ListMessages(ctx context.Context, threadID, userID string) (*ThreadMessages, error) {
	thread, err := s.dmRepo.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if userID != thread.Participant1 && userID != thread.Participant2 {
		return nil, fmt.Errorf("пользователь не является участником треда")
	}

	messages, err := s.dmRepo.GetMessagesByThreadID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	limit := s.messageLimit()

	remaining := limit - thread.MessageCount
	if remaining < 0 {
		remaining = 0
	}

	return &ThreadMessages{
		Messages:     messages,
		MessageCount: thread.MessageCount,
		Limit:        limit,
		Remaining:    remaining,
	}, nil
}

// TrySend отправляет сообщение, если лимит треда еще не достигнут.
// После лимита сообщения не принимаются и не пишутся в БД
func (s *dmService) TrySend(ctx context.Context, threadID, senderID, content string) (*SendResult, error) {
	thread, err := s.dmRepo.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if senderID != thread.Participant1 && senderID != thread.Participant2 {
		return nil, fmt.Errorf("отправитель не является участником треда")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("сообщение не может быть пустым")
	}

	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, fmt.Errorf("сообщение длиннее %d символов", MaxMessageLength)
	}

	limit := s.messageLimit()

	if thread.MessageCount >= limit {
		return nil, fmt.Errorf("достигнут лимит сообщений в треде (%d)", limit)
	}

	message := &models.DMMessage{
		ThreadID: threadID,
		SenderID: senderID,
		Content:  content,
	}

	err = s.dmRepo.CreateMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	newCount := thread.MessageCount + 1

	remaining := limit - newCount
	if remaining < 0 {
		remaining = 0
	}

	return &SendResult{
		Message:      message,
		MessageCount: newCount,
		Remaining:    remaining,
	}, nil
}

func (s *dmService) messageLimit() int {
	if s.cfg != nil && s.cfg.DMMessageLimit > 0 {
		return s.cfg.DMMessageLimit
	}
	return 10
}
