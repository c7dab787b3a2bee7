package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"privatepartyy/internal/service"
)

// RequestUpload выдает presigned URL для прямой загрузки файла в хранилище.
// Все нарушения валидации возвращаются списком, а не по одному
func (h *Handlers) RequestUpload(w http.ResponseWriter, r *http.Request) {
	var req service.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	violations := service.ValidateUpload(req)
	if len(violations) > 0 {
		WriteErrorDetails(w, "Ошибка валидации запроса на загрузку", violations, http.StatusBadRequest)
		return
	}

	// checking the event and its token
	event, err := h.EventRepo.GetByID(r.Context(), req.EventID)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if event.Token != req.EventToken {
		WriteError(w, "Неверный токен события", http.StatusForbidden)
		return
	}

	userID := req.UserID
	if userID == "" {
		// identity from the JWT middleware, if any
		if ctxUserID, ok := r.Context().Value("userID").(string); ok && ctxUserID != "" {
			userID = ctxUserID
		} else {
			userID = "anonymous"
		}
	}

	// rate limit before the upload is attempted
	if !h.Limiter.Allow(userID) {
		WriteErrorDetails(w, "Превышен лимит загрузок, попробуйте позже",
			map[string]int{"limit": h.Limiter.Limit(), "remaining": h.Limiter.Remaining(userID)},
			http.StatusTooManyRequests)
		return
	}

	ticket, err := h.UploadService.PresignUpload(r.Context(), req)
	if err != nil {
		WriteError(w, "Не удалось создать URL для загрузки", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ticket, http.StatusOK)
}
