package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Audit portssvc.AuditRecorderSvc
	// Now is the service clock. Nil means time.Now in UTC.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// recordAudit appends an audit record when a recorder is configured.
// The recorder itself decides whether auditing is enabled.
func (s *BaseService) recordAudit(ctx context.Context, rec domain.AuditRecord) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, rec)
}
