package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cabinet"
)

// Ensure LoggingConfigService implements cabinet.ConfigService.
var _ cabinet.ConfigService = (*LoggingConfigService)(nil)

// LoggingConfigService wraps a ConfigService with debug logging. Reads log
// at debug level and writes at info level.
type LoggingConfigService struct {
	next   cabinet.ConfigService
	logger *slog.Logger
}

// NewLoggingConfigService creates a new LoggingConfigService.
func NewLoggingConfigService(next cabinet.ConfigService, logger *slog.Logger) *LoggingConfigService {
	return &LoggingConfigService{next: next, logger: logger}
}

func (s *LoggingConfigService) Get(ctx context.Context, key string) (v cabinet.Value, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("config get", "key", key, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Get(ctx, key)
}

func (s *LoggingConfigService) GetOrDefault(ctx context.Context, key string, def cabinet.Value) (v cabinet.Value, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("config get", "key", key, "default", def.String(), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.GetOrDefault(ctx, key, def)
}

func (s *LoggingConfigService) Set(ctx context.Context, key string, value cabinet.Value) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("config set", "key", key, "value", value.String(), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Set(ctx, key, value)
}

func (s *LoggingConfigService) Create(ctx context.Context, entry cabinet.ConfigEntry) (v cabinet.Value, err error) {
	defer func(begin time.Time) {
		s.logger.Info("config create", "key", entry.Key, "value", v.String(), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Create(ctx, entry)
}

func (s *LoggingConfigService) Reset(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("config reset", "key", key, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Reset(ctx, key)
}

func (s *LoggingConfigService) List(ctx context.Context) (entries map[string]cabinet.ConfigEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("config list", "count", len(entries), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.List(ctx)
}
