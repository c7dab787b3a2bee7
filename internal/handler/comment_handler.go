package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"privatepartyy/internal/models"
)

type CommentsGetResponse struct {
	Comments []models.Comment `json:"comments"`
	Total    int              `json:"total"`
}

type CreateCommentRequest struct {
	AuthorID string `json:"authorId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	AuthorID string `json:"authorId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	comments, err := h.CommentRepo.GetByPostID(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, CommentsGetResponse{Comments: comments, Total: len(comments)}, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указаны authorId или content", http.StatusBadRequest)
		return
	}

	// checking the post exists
	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	}

	if err := h.CommentRepo.Create(r.Context(), comment); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.PostRepo.IncrementCommentCount(r.Context(), postID, 1); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	commentID := vars["commentId"]

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указаны authorId или content", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Комментарий не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// мутация разрешена только автору
	if comment.AuthorID != req.AuthorID {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	comment.Content = req.Content

	if err := h.CommentRepo.Update(r.Context(), comment); err != nil {
		if strings.Contains(err.Error(), "нет прав") {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	commentID := vars["commentId"]

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteError(w, "Не указан userId", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Комментарий не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if comment.AuthorID != userID {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	if err := h.CommentRepo.Delete(r.Context(), commentID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.PostRepo.IncrementCommentCount(r.Context(), postID, -1); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Комментарий удален"}, http.StatusOK)
}
