package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// sensitiveFields are field names that must never reach the logs. Matching
// is substring-based on lowercased keys, so "password_hash" and
// "Authorization" are both caught.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"credential",
	"cookie",
}

// LoggingMiddleware logs every request and response pair with bodies
// included, after scrubbing credential material.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())

			var reqBody []byte
			if r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewBuffer(reqBody))
			}

			logger.Info("incoming request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"headers", scrubHeaders(r.Header),
				"body", scrubBody(reqBody),
			)

			ww := &responseWriter{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(ww, r)

			status := ww.statusCode
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "response",
				"request_id", reqID,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", ww.body.Len(),
				"body", scrubBody(ww.body.Bytes()),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func scrubHeaders(headers http.Header) map[string]string {
	scrubbed := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitiveKey(name) {
			scrubbed[name] = "[FILTERED]"
		} else {
			scrubbed[name] = strings.Join(values, ", ")
		}
	}
	return scrubbed
}

// scrubBody masks sensitive fields in JSON payloads. Non-JSON bodies are
// dropped wholesale when they look like they carry credential material.
func scrubBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		if isSensitiveKey(string(body)) {
			return "[FILTERED]"
		}
		return string(body)
	}

	scrubbed, err := json.Marshal(scrubJSON(data))
	if err != nil {
		return "[FILTERED]"
	}
	return string(scrubbed)
}

func scrubJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitiveKey(key) {
				out[key] = "[FILTERED]"
			} else {
				out[key] = scrubJSON(value)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = scrubJSON(item)
		}
		return out
	default:
		return v
	}
}
