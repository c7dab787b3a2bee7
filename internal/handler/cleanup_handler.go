package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type CleanupRequest struct {
	MaxAgeHours int `json:"maxAgeHours"`
}

// CleanupEvents запускает удаление устаревших событий. Если в конфиге задан
// CLEANUP_SECRET, запрос должен нести его в заголовке Authorization
func (h *Handlers) CleanupEvents(w http.ResponseWriter, r *http.Request) {
	if h.Cfg.CleanupSecret != "" {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
			return
		}

		// Checking the "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] != h.Cfg.CleanupSecret {
			WriteError(w, "Неверный токен очистки", http.StatusForbidden)
			return
		}
	}

	maxAgeHours := h.Cfg.EventMaxAgeHours

	// тело опционально
	if r.Body != nil {
		var req CleanupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.MaxAgeHours > 0 {
			maxAgeHours = req.MaxAgeHours
		}
	}

	result, err := h.CleanupService.CleanupExpired(r.Context(), maxAgeHours)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}
