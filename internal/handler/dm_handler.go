package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"privatepartyy/internal/models"
)

type ThreadsGetResponse struct {
	Threads []models.DMThread `json:"threads"`
	Total   int               `json:"total"`
}

type CreateThreadRequest struct {
	User1 string `json:"user1" validate:"required"`
	User2 string `json:"user2" validate:"required"`
}

type SendMessageRequest struct {
	SenderID string `json:"senderId" validate:"required"`
	Content  string `json:"content"`
}

func (h *Handlers) GetThreads(w http.ResponseWriter, r *http.Request) {
	idOrToken := mux.Vars(r)["idOrToken"]

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteError(w, "Не указан userId", http.StatusBadRequest)
		return
	}

	event, err := h.EventRepo.Resolve(r.Context(), idOrToken)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	threads, err := h.DMService.ListThreads(r.Context(), event.EventID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ThreadsGetResponse{Threads: threads, Total: len(threads)}, http.StatusOK)
}

func (h *Handlers) CreateThread(w http.ResponseWriter, r *http.Request) {
	idOrToken := mux.Vars(r)["idOrToken"]

	var req CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указаны оба участника", http.StatusBadRequest)
		return
	}

	event, err := h.EventRepo.Resolve(r.Context(), idOrToken)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	thread, err := h.DMService.StartThread(r.Context(), event.EventID, req.User1, req.User2)
	if err != nil {
		if strings.Contains(err.Error(), "с самим собой") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, thread, http.StatusCreated)
}

func (h *Handlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadId"]

	// userId обязателен: чужие треды читать нельзя
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteError(w, "Не указан userId", http.StatusBadRequest)
		return
	}

	result, err := h.DMService.ListMessages(r.Context(), threadID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Тред не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "не является участником") {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadId"]

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указан senderId", http.StatusBadRequest)
		return
	}

	result, err := h.DMService.TrySend(r.Context(), threadID, req.SenderID, req.Content)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Тред не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "не является участником") {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
		} else if strings.Contains(err.Error(), "лимит сообщений") {
			WriteErrorDetails(w, err.Error(),
				map[string]int{"limit": h.Cfg.DMMessageLimit, "remaining": 0},
				http.StatusTooManyRequests)
		} else if strings.Contains(err.Error(), "пустым") || strings.Contains(err.Error(), "длиннее") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, result, http.StatusCreated)
}
