package logging

import (
	"net/http"
	"time"

	"github.com/rockymountnc/licensetracker/internal/httputil"
)

// statusWriter captures the response status for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// AccessLog wraps next and emits one line per request with the method,
// path, response status, duration and client IP, tagged with the request ID
// when one is in the context.
func AccessLog(l *Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		l.InfoContext(r.Context(), "Request handled",
			Method(r.Method),
			Path(r.URL.Path),
			Status(sw.status),
			Duration(time.Since(start).Milliseconds()),
			IP(httputil.GetClientIP(r)),
		)
	})
}
