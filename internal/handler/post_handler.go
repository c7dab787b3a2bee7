package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"privatepartyy/internal/models"
	"privatepartyy/internal/service"
)

type PostsGetResponse struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

type CreateTextPostRequest struct {
	AuthorID   string `json:"authorId" validate:"required"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content" validate:"required"`
}

// GetPosts возвращает посты события. Посты других событий сюда попасть
// не могут: выборка всегда идет по разрешенному event_id
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	idOrToken := mux.Vars(r)["idOrToken"]

	// resolving the event first
	event, err := h.EventRepo.Resolve(r.Context(), idOrToken)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	posts, err := h.PostRepo.GetByEventID(r.Context(), event.EventID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// attaching media for multi posts
	for i := range posts {
		if posts[i].Type != "multi" {
			continue
		}

		media, err := h.MediaRepo.GetByPostID(r.Context(), posts[i].PostID)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		posts[i].Media = media
	}

	WriteSuccess(w, PostsGetResponse{Posts: posts, Total: len(posts)}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	idOrToken := mux.Vars(r)["idOrToken"]

	event, err := h.EventRepo.Resolve(r.Context(), idOrToken)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// multipart - пост с файлом, json - текстовый пост
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.createImagePost(w, r, event)
		return
	}

	h.createTextPost(w, r, event)
}

func (h *Handlers) createTextPost(w http.ResponseWriter, r *http.Request, event *models.Event) {
	var req CreateTextPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указаны authorId или content", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		WriteError(w, "Пост не может быть пустым", http.StatusBadRequest)
		return
	}

	post := &models.Post{
		EventID:    event.EventID,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Type:       "text",
		Content:    req.Content,
	}

	if err := h.PostRepo.Create(r.Context(), post); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) createImagePost(w http.ResponseWriter, r *http.Request, event *models.Event) {
	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1024)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	authorID := r.FormValue("authorId")
	if authorID == "" {
		WriteError(w, "Не указан authorId", http.StatusBadRequest)
		return
	}

	// rate limit before the upload is attempted
	if !h.Limiter.Allow(authorID) {
		WriteErrorDetails(w, "Превышен лимит загрузок, попробуйте позже",
			map[string]int{"limit": h.Limiter.Limit(), "remaining": h.Limiter.Remaining(authorID)},
			http.StatusTooManyRequests)
		return
	}

	// несколько файлов под одним полем - мульти-пост
	if fileHeaders := r.MultipartForm.File["file"]; len(fileHeaders) > 1 {
		h.createMultiPost(w, r, event, authorID, fileHeaders)
		return
	}

	// getting the file
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	violations := service.ValidateUpload(service.UploadRequest{
		EventID:    event.EventID,
		EventToken: event.Token,
		FileName:   fileHeader.Filename,
		FileType:   fileHeader.Header.Get("Content-Type"),
		FileSize:   fileHeader.Size,
	})
	if len(violations) > 0 {
		WriteErrorDetails(w, "Ошибка валидации файла", violations, http.StatusBadRequest)
		return
	}

	post, err := h.UploadService.UploadAndRecord(r.Context(), service.CreateImagePostRequest{
		EventID:    event.EventID,
		AuthorID:   authorID,
		AuthorName: r.FormValue("authorName"),
		Caption:    r.FormValue("caption"),
		FileName:   fileHeader.Filename,
		FileType:   fileHeader.Header.Get("Content-Type"),
	}, file, fileHeader.Size)
	if err != nil {
		WriteError(w, "Ошибка загрузки изображения", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) createMultiPost(w http.ResponseWriter, r *http.Request, event *models.Event, authorID string, fileHeaders []*multipart.FileHeader) {
	// сначала валидируем все файлы, ответ содержит полный список нарушений
	var violations []string
	for _, fh := range fileHeaders {
		violations = append(violations, service.ValidateUpload(service.UploadRequest{
			EventID:    event.EventID,
			EventToken: event.Token,
			FileName:   fh.Filename,
			FileType:   fh.Header.Get("Content-Type"),
			FileSize:   fh.Size,
		})...)
	}
	if len(violations) > 0 {
		WriteErrorDetails(w, "Ошибка валидации файлов", violations, http.StatusBadRequest)
		return
	}

	mediaFiles := make([]service.MediaFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
			return
		}
		defer file.Close()

		mediaFiles = append(mediaFiles, service.MediaFile{
			FileName: fh.Filename,
			FileType: fh.Header.Get("Content-Type"),
			File:     file,
			Size:     fh.Size,
		})
	}

	post, err := h.UploadService.UploadMultiAndRecord(r.Context(), service.CreateImagePostRequest{
		EventID:    event.EventID,
		AuthorID:   authorID,
		AuthorName: r.FormValue("authorName"),
		Caption:    r.FormValue("caption"),
	}, mediaFiles)
	if err != nil {
		WriteError(w, "Ошибка загрузки изображений", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}
