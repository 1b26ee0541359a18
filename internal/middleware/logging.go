package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLogging logs method, path, response status and duration for
// every request.
func RequestLogging(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			logger.Infof("%s %s %d %s %s",
				r.Method,
				r.RequestURI,
				sw.status,
				http.StatusText(sw.status),
				time.Since(start),
			)
		})
	}
}
