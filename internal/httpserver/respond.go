package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	// isoMillis matches the JavaScript Date#toISOString layout clients already parse.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"

	redactedMessage = "An error occurred"
)

type errorBody struct {
	Error   string `json:"error"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// handlerFunc is an http.HandlerFunc that may fail. A returned error is
// turned into a 500 JSON body by Server.handle.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.internalError(w, r, err)
		}
	}
}

// writeJSON encodes before touching the response so an encoding failure
// can still become a clean 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)

	msg := err.Error()
	if s.cfg.IsProduction() {
		msg = redactedMessage
	}
	s.metrics.incHandlerErrors()
	_ = writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "Internal Server Error",
		Message: msg,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusNotFound, errorBody{
		Error:   "Not Found",
		Path:    r.URL.Path,
		Message: "The requested endpoint does not exist",
	})
}
