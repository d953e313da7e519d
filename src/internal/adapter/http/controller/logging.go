package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/middleware"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// requestFields identifies the call and, behind bearer auth, the caller.
func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if id := r.Header.Get(requestIDHeader); id != "" {
		fields["requestId"] = id
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.UserID() != "" {
		fields["userId"] = claims.UserID()
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	fields["query"] = r.URL.RawQuery
	fields["payload"] = logger.SanitizePayload(payload)
	logger.Info("http request", fields)
}

// logResponse logs failed statuses at warn level.
func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	fields["response"] = logger.SanitizePayload(payload)

	if status >= http.StatusBadRequest {
		logger.Warn("http response", fields)
		return
	}
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	fields["query"] = r.URL.RawQuery
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
