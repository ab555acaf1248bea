package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// logRequests writes one line per request before it is dispatched.
// RemoteAddr has already been rewritten by middleware.RealIP.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		if reqID != "" {
			w.Header().Set(middleware.RequestIDHeader, reqID)
		}
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		next.ServeHTTP(w, r)
	})
}

// recoverJSON turns a handler panic into the same 500 body a returned
// error produces and keeps the server running.
func (s *Server) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			s.internalError(w, r, err)
		}()
		next.ServeHTTP(w, r)
	})
}
