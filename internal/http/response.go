package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"posture-backend-go/internal/services"
)

// Every response uses the same envelope.
type Envelope struct {
	OK      bool        `json:"ok"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Envelope{OK: true, Data: data})
}

func WriteList(w http.ResponseWriter, data interface{}, meta Meta) {
	WriteJSON(w, http.StatusOK, Envelope{OK: true, Data: data, Meta: &meta})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{OK: true, Message: message})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{OK: false, Message: message})
}

// WriteFailure maps a service error to its taxonomy status; anything else is
// an internal fault whose text is echoed in the error field.
func WriteFailure(w http.ResponseWriter, err error, fallback string) {
	var serr services.ServiceError
	if errors.As(err, &serr) {
		WriteJSON(w, serr.Status, Envelope{OK: false, Message: serr.Message})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, Envelope{OK: false, Message: fallback, Error: err.Error()})
}
