// Package slog provides logging decorators for cabinet services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cabinet"
)

// Ensure LoggingFilingService implements cabinet.FilingService.
var _ cabinet.FilingService = (*LoggingFilingService)(nil)

// LoggingFilingService wraps a FilingService with logging.
type LoggingFilingService struct {
	next   cabinet.FilingService
	logger *slog.Logger
}

// NewLoggingFilingService creates a new LoggingFilingService.
func NewLoggingFilingService(next cabinet.FilingService, logger *slog.Logger) *LoggingFilingService {
	return &LoggingFilingService{next: next, logger: logger}
}

// Checkin delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Checkin(ctx context.Context, path string) (checksum string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("checkin",
			"path", path,
			"checksum", checksum,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Checkin(ctx, path)
}

// Checkout delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Checkout(ctx context.Context, checksum string, dir string) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("checkout",
			"checksum", checksum,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Checkout(ctx, checksum, dir)
}

// Index delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Index(ctx context.Context, root string, opts cabinet.IndexOptions) (result *cabinet.IndexResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"root", root}
		if result != nil {
			attrs = append(attrs,
				"discovered", len(result.Discovered),
				"known", result.Known,
				"skipped", result.Skipped,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("index", attrs...)
	}(time.Now())
	return s.next.Index(ctx, root, opts)
}

// Add delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Add(ctx context.Context, path string) (result *cabinet.AddResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", path}
		if result != nil {
			attrs = append(attrs, "processed", result.Processed, "skipped", result.Skipped)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("add", attrs...)
	}(time.Now())
	return s.next.Add(ctx, path)
}

// FileInfo delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) FileInfo(ctx context.Context, path string) (info *cabinet.FileInfo, err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", path}
		if info != nil {
			attrs = append(attrs,
				"checksum", info.Checksum,
				"filed", info.File != nil,
				"incarnations", len(info.Incarnations),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Debug("file info", attrs...)
	}(time.Now())
	return s.next.FileInfo(ctx, path)
}

// Remove delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Remove(ctx context.Context, checksum string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("remove",
			"checksum", checksum,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Remove(ctx, checksum)
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Search(ctx context.Context, query string) (files []*cabinet.File, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"count", len(files),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

// Statistics delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) Statistics(ctx context.Context) (stats *cabinet.Statistics, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("statistics",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Statistics(ctx)
}
