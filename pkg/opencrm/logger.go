package opencrm

import (
	"context"
	"log/slog"
	"net/url"
	"sort"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// Logger interface for custom logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

// Debug logs at debug level.
func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info logs at info level.
func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn logs at warn level.
func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error logs at error level.
func (l *SlogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

var secretFields = map[string]bool{
	constants.FieldAPIKey:    true,
	constants.FieldPassKey:   true,
	constants.FieldAccessKey: true,
	constants.FieldLoginKey:  true,
	constants.HeaderKey1:     true,
	constants.HeaderKey2:     true,
}

// IsSecretField reports whether a form field or header carries credentials.
func IsSecretField(name string) bool {
	return secretFields[name]
}

// MaskForm flattens form values for logging with credentials masked.
func MaskForm(form url.Values) map[string]string {
	masked := make(map[string]string, len(form))

	for key := range form {
		if IsSecretField(key) {
			masked[key] = constants.MaskedSecret

			continue
		}

		masked[key] = form.Get(key)
	}

	return masked
}
