package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"privatepartyy/internal/config"
	"privatepartyy/internal/models"
	"privatepartyy/internal/repository"
	"privatepartyy/internal/storage"
)

// MaxFileSize - потолок размера файла, 10 MiB
const MaxFileSize = 10 * 1024 * 1024

var allowedFileTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

var allowedUploadTypes = map[string]bool{
	"post":    true,
	"event":   true,
	"profile": true,
}

type UploadRequest struct {
	EventID    string `json:"eventId"`
	EventToken string `json:"eventToken"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize,omitempty"`
	UploadType string `json:"uploadType,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

type UploadTicket struct {
	UploadURL   string `json:"uploadUrl"`
	StoragePath string `json:"storagePath"`
	PublicURL   string `json:"publicUrl"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// ValidateUpload проверяет запрос на загрузку и возвращает ВСЕ нарушения,
// а не первое: вызывающая сторона показывает пользователю полный список
func ValidateUpload(req UploadRequest) []string {
	var violations []string

	if req.EventID == "" {
		violations = append(violations, "не указан eventId")
	}
	if req.EventToken == "" {
		violations = append(violations, "не указан eventToken")
	}
	if req.FileName == "" {
		violations = append(violations, "не указано имя файла")
	}
	if req.FileType == "" {
		violations = append(violations, "не указан тип файла")
	}

	if req.FileType != "" && !allowedFileTypes[strings.ToLower(req.FileType)] {
		violations = append(violations,
			fmt.Sprintf("недопустимый тип файла %s: разрешены JPEG, PNG, GIF, WebP, SVG", req.FileType))
	}

	if req.FileSize != 0 {
		if req.FileSize < 0 {
			violations = append(violations, "размер файла должен быть положительным числом")
		} else if req.FileSize > MaxFileSize {
			violations = append(violations,
				fmt.Sprintf("размер файла превышает лимит %d MB", MaxFileSize/(1024*1024)))
		}
	}

	if utf8.RuneCountInString(req.FileName) > 255 {
		violations = append(violations, "имя файла длиннее 255 символов")
	}

	if strings.Contains(req.FileName, "..") ||
		strings.Contains(req.FileName, "/") ||
		strings.Contains(req.FileName, "\\") {
		violations = append(violations, "имя файла содержит недопустимые символы пути")
	}

	if req.UploadType != "" && !allowedUploadTypes[req.UploadType] {
		violations = append(violations,
			fmt.Sprintf("недопустимый uploadType %s: разрешены post, event, profile", req.UploadType))
	}

	return violations
}

type CreateImagePostRequest struct {
	EventID    string
	AuthorID   string
	AuthorName string
	Caption    string
	FileName   string
	FileType   string
}

// MediaFile - один файл из multipart-запроса с несколькими вложениями
type MediaFile struct {
	FileName string
	FileType string
	File     io.Reader
	Size     int64
}

type UploadService interface {
	UploadAndRecord(ctx context.Context, req CreateImagePostRequest, file io.Reader, size int64) (*models.Post, error)
	UploadMultiAndRecord(ctx context.Context, req CreateImagePostRequest, files []MediaFile) (*models.Post, error)
	PresignUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error)
}

type uploadService struct {
	postRepo  repository.PostRepository
	mediaRepo repository.MediaRepository
	storage   storage.Storage
	cfg       *config.Config
	log       zerolog.Logger
}

func NewUploadService(postRepo repository.PostRepository, mediaRepo repository.MediaRepository, storage storage.Storage, cfg *config.Config, log zerolog.Logger) UploadService {
	return &uploadService{
		postRepo:  postRepo,
		mediaRepo: mediaRepo,
		storage:   storage,
		cfg:       cfg,
		log:       log,
	}
}

// UploadAndRecord пишет файл в хранилище, затем строку метаданных в БД.
// Если вставка в БД не удалась, только что записанный объект удаляется
// компенсирующим вызовом, чтобы не оставлять сирот; сбой самой компенсации
// логируется, но наружу всегда уходит исходная ошибка БД.
// Падение процесса между двумя записями оставит сироту - durable-очереди
// повторов здесь нет.
func (s *uploadService) UploadAndRecord(ctx context.Context, req CreateImagePostRequest, file io.Reader, size int64) (*models.Post, error) {
	objectName := storage.BuildObjectName(req.EventID, req.FileName)

	publicURL, err := s.storage.UploadObject(ctx, objectName, req.FileType, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки файла в хранилище: %w", err)
	}

	post := &models.Post{
		EventID:     req.EventID,
		AuthorID:    req.AuthorID,
		AuthorName:  req.AuthorName,
		Type:        "image",
		Content:     req.Caption,
		StoragePath: objectName,
	}

	err = s.postRepo.Create(ctx, post)
	if err != nil {
		// компенсирующее удаление осиротевшего объекта
		if delErr := s.storage.DeleteObject(ctx, objectName); delErr != nil {
			s.log.Warn().
				Str("storage_path", objectName).
				Err(delErr).
				Msg("не удалось удалить осиротевший объект из хранилища")
		}
		return nil, fmt.Errorf("ошибка сохранения метаданных в БД: %w", err)
	}

	s.log.Info().
		Str("post_id", post.PostID).
		Str("storage_path", objectName).
		Str("public_url", publicURL).
		Msg("файл загружен и пост создан")

	return post, nil
}

// UploadMultiAndRecord загружает несколько файлов и создает один пост типа
// multi со строками media_items в порядке следования файлов. Компенсация та
// же, что в UploadAndRecord: при сбое БД уже загруженные объекты удаляются,
// наружу уходит исходная ошибка.
func (s *uploadService) UploadMultiAndRecord(ctx context.Context, req CreateImagePostRequest, files []MediaFile) (*models.Post, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("не переданы файлы для загрузки")
	}

	objectNames := make([]string, 0, len(files))
	for _, f := range files {
		objectName := storage.BuildObjectName(req.EventID, f.FileName)

		if _, err := s.storage.UploadObject(ctx, objectName, f.FileType, f.File, f.Size); err != nil {
			s.removeUploaded(ctx, objectNames)
			return nil, fmt.Errorf("ошибка загрузки файла %s в хранилище: %w", f.FileName, err)
		}
		objectNames = append(objectNames, objectName)
	}

	post := &models.Post{
		EventID:    req.EventID,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Type:       "multi",
		Content:    req.Caption,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.removeUploaded(ctx, objectNames)
		return nil, fmt.Errorf("ошибка сохранения метаданных в БД: %w", err)
	}

	for i, objectName := range objectNames {
		item := &models.MediaItem{
			PostID:       post.PostID,
			Type:         "image",
			StoragePath:  objectName,
			DisplayOrder: i,
		}

		if err := s.mediaRepo.Create(ctx, item); err != nil {
			// откатываем уже вставленные media_items и сам пост,
			// затем убираем объекты из хранилища
			if delErr := s.mediaRepo.DeleteByPostID(ctx, post.PostID); delErr != nil {
				s.log.Warn().Str("post_id", post.PostID).Err(delErr).
					Msg("не удалось удалить media_items при откате")
			}
			if delErr := s.postRepo.Delete(ctx, post.PostID); delErr != nil {
				s.log.Warn().Str("post_id", post.PostID).Err(delErr).
					Msg("не удалось удалить пост при откате")
			}
			s.removeUploaded(ctx, objectNames)
			return nil, fmt.Errorf("ошибка сохранения медиа в БД: %w", err)
		}

		post.Media = append(post.Media, *item)
	}

	s.log.Info().
		Str("post_id", post.PostID).
		Int("media_count", len(post.Media)).
		Msg("файлы загружены и мульти-пост создан")

	return post, nil
}

// removeUploaded - компенсирующее пакетное удаление; сбой логируется,
// исходная ошибка вызывающего не затирается
func (s *uploadService) removeUploaded(ctx context.Context, objectNames []string) {
	if len(objectNames) == 0 {
		return
	}

	if err := s.storage.DeleteObjects(ctx, objectNames); err != nil {
		s.log.Warn().
			Strs("storage_paths", objectNames).
			Err(err).
			Msg("не удалось удалить осиротевшие объекты из хранилища")
	}
}

// PresignUpload выдает presigned URL для прямой загрузки файла в хранилище
func (s *uploadService) PresignUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error) {
	objectName := storage.BuildObjectName(req.EventID, req.FileName)

	uploadURL, err := s.storage.PresignedUploadURL(ctx, objectName)
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		UploadURL:   uploadURL,
		StoragePath: objectName,
		PublicURL:   s.storage.PublicURL(objectName),
		ExpiresIn:   int64(s.storage.URLExpiry().Seconds()),
	}, nil
}
