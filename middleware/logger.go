package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

type logFieldsKey struct{}

// requestFields collects values that inner middleware learn about the
// request and that belong in the access log
type requestFields struct {
	sessionID string
}

func setLogSessionID(ctx context.Context, sessionID string) {
	if f, ok := ctx.Value(logFieldsKey{}).(*requestFields); ok {
		f.sessionID = sessionID
	}
}

// LoggerMiddleware logs every request and turns panics into a 500 response
func LoggerMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			fields := &requestFields{}
			r = r.WithContext(context.WithValue(r.Context(), logFieldsKey{}, fields))

			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("error", fmt.Sprint(rec)).
						Msg("panic while serving request")

					// a response already under way cannot be replaced
					if recorder.status == 0 {
						recorder.Header().Set("Content-Type", "application/json")
						recorder.WriteHeader(http.StatusInternalServerError)
						json.NewEncoder(recorder).Encode(map[string]string{
							"error": "Internal Server Error",
						})
					}
				}

				status := recorder.status
				if status == 0 {
					status = http.StatusOK
				}
				event := logger.Info()
				if status >= http.StatusInternalServerError {
					event = logger.Error()
				}
				event.
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Int("status", status).
					Str("session_id", fields.sessionID).
					Dur("duration", time.Since(start)).
					Msg("request completed")
			}()

			next.ServeHTTP(recorder, r)
		})
	}
}
