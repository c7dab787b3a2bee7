package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"privatepartyy/internal/models"
)

type LikesGetResponse struct {
	Likes []models.Like `json:"likes"`
	Total int           `json:"total"`
}

type CreateLikeRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *Handlers) GetLikes(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	likes, err := h.LikeRepo.GetByPostID(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, LikesGetResponse{Likes: likes, Total: len(likes)}, http.StatusOK)
}

func (h *Handlers) CreateLike(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req CreateLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указан userId", http.StatusBadRequest)
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	like := &models.Like{
		PostID: postID,
		UserID: req.UserID,
	}

	// уникальность пары обеспечивает ограничение в БД
	if err := h.LikeRepo.Create(r.Context(), like); err != nil {
		if strings.Contains(err.Error(), "уже существует") {
			WriteError(w, "Лайк уже поставлен", http.StatusConflict)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.PostRepo.IncrementLikeCount(r.Context(), postID, 1); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, like, http.StatusCreated)
}

func (h *Handlers) DeleteLike(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteError(w, "Не указан userId", http.StatusBadRequest)
		return
	}

	if err := h.LikeRepo.Delete(r.Context(), postID, userID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Лайк не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.PostRepo.IncrementLikeCount(r.Context(), postID, -1); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Лайк удален"}, http.StatusOK)
}
