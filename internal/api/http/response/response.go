// Package response writes JSON bodies for the HTTP API.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/Gi2009/cod-back/internal/logger"
)

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// Writer encodes response bodies and logs encoding failures.
type Writer struct {
	logger *logger.Logger
}

// NewWriter creates a Writer that reports failures to logger.
func NewWriter(logger *logger.Logger) *Writer {
	return &Writer{logger: logger}
}

// JSON writes data with the given status code.
func (rw *Writer) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rw.logger.Error("Response writer: failed to write JSON response",
			"status", status,
			"error", err.Error())
	}
}

// Message writes {"message": msg}.
func (rw *Writer) Message(w http.ResponseWriter, status int, msg string) {
	rw.JSON(w, status, Message{Message: msg})
}
