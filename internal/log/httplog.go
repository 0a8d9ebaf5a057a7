package log

import (
	"time"
)

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	Method     string
	Path       string
	Page       string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
	RequestID  string
}

// LogHTTPRequest writes a structured access log line. 5xx responses are logged
// at error level, everything else at info (debug for health and metrics scrapes).
func LogHTTPRequest(e HTTPLogEntry) {
	fields := []interface{}{
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", e.Duration.Milliseconds(),
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
	}
	if e.Page != "" {
		fields = append(fields, "page", e.Page)
	}
	if e.RequestID != "" {
		fields = append(fields, "request_id", e.RequestID)
	}

	switch {
	case e.Status >= 500:
		Errorw("http request", fields...)
	case e.Path == "/healthz" || e.Path == "/metrics":
		Debugw("http request", fields...)
	default:
		Infow("http request", fields...)
	}
}
