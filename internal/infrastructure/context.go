package infrastructure

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	apperrors "auelect/internal/errors"
)

// GenerateRunID creates a new unique run ID using UUID v4
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID creates a new context with a generated run ID
func ContextWithRunID(ctx context.Context) context.Context {
	return WithRunID(ctx, GenerateRunID())
}

// EnsureRunID ensures the context has a run ID, generating one if needed
func EnsureRunID(ctx context.Context) context.Context {
	if GetRunID(ctx) == "" {
		return ContextWithRunID(ctx)
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With("component", component)
}

// WithError creates a logger with an error field. Application errors also
// contribute their type and context.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	logger = logger.With("error", err.Error())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		logger = logger.With("error_type", string(appErr.Type))
		if len(appErr.Context) > 0 {
			logger = logger.With("error_context", appErr.Context)
		}
	}
	return logger
}
