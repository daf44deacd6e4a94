package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBackend is the structured log field key for the LLM backend name.
	FieldBackend = "llm_backend"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "llm_model"
	// FieldProtocol is the structured log field key for the scoring protocol.
	FieldProtocol = "protocol"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ScoringFields returns standard zap fields describing the scoring pipeline:
// backend, model, and protocol. Empty values are ignored to keep log entries
// compact when information is missing.
func ScoringFields(backend, model, protocol string) []zap.Field {
	return StringFields(
		StringField{Key: FieldBackend, Value: backend},
		StringField{Key: FieldModel, Value: model},
		StringField{Key: FieldProtocol, Value: protocol},
	)
}

// WithScoringFields attaches the standard scoring fields to the provided
// logger. If the logger is nil, a no-op logger is created to avoid panics.
func WithScoringFields(logger *zap.Logger, backend, model, protocol string) *zap.Logger {
	fields := ScoringFields(backend, model, protocol)
	return WithFields(logger, fields...)
}
