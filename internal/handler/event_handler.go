package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"privatepartyy/internal/service"
)

type CreateEventRequest struct {
	Title     string    `json:"title" validate:"required"`
	EventDate time.Time `json:"eventDate"`
	HostID    string    `json:"hostId" validate:"required"`
}

type EventQRResponse struct {
	JoinURL string `json:"joinUrl"`
	QRImage string `json:"qrImage"`
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Не указаны title или hostId", http.StatusBadRequest)
		return
	}

	if req.EventDate.IsZero() {
		req.EventDate = time.Now()
	}

	// creating an event
	event, err := h.EventService.CreateEvent(r.Context(), service.CreateEventRequest{
		Title:     req.Title,
		EventDate: req.EventDate,
		HostID:    req.HostID,
	})
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, event, http.StatusCreated)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	idOrToken := mux.Vars(r)["idOrToken"]

	event, err := h.EventService.ResolveEvent(r.Context(), idOrToken)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, event, http.StatusOK)
}

func (h *Handlers) EventQR(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	result, err := h.EventService.EventQR(r.Context(), eventID)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Событие не найдено", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// forming the response
	response := EventQRResponse{
		JoinURL: result.JoinURL,
		QRImage: base64.StdEncoding.EncodeToString(result.QRImage),
	}

	WriteSuccess(w, response, http.StatusOK)
}
