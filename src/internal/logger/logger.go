package logger

import (
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"password":          {},
	"confirmpassword":   {},
	"passwordhash":      {},
	"password_hash":     {},
	"token":             {},
	"accesstoken":       {},
	"cardnumber":        {},
	"cvv":               {},
	"aadhaarnumber":     {},
	"aadhaar_number":    {},
	"pannumber":         {},
	"pan_number":        {},
	"bankaccountnumber": {},
	"accountnumber":     {},
}

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init replaces the process logger with a JSON zap logger at the given level.
func Init(level string) error {
	lvl := zapcore.InfoLevel
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(trimmed))); err != nil {
			return err
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	Use(built)
	return nil
}

// Use swaps the underlying zap logger; tests pass an observer core here.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	base = l
	mu.Unlock()
}

func Sync() {
	_ = current().Sync()
}

func Info(message string, fields Fields) {
	current().Info(message, zapFields(fields)...)
}

func Warn(message string, fields Fields) {
	current().Warn(message, zapFields(fields)...)
}

func Error(message string, err error, fields Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.String("error", err.Error()))
	}

	current().Error(message, zf...)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func zapFields(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	sanitized, ok := SanitizePayload(fields).(map[string]any)
	if !ok {
		return []zap.Field{zap.Any("fields", "<unavailable>")}
	}

	out := make([]zap.Field, 0, len(sanitized))
	for key, value := range sanitized {
		out = append(out, zap.Any(key, value))
	}
	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
