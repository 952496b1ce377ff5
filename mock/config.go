package mock

import (
	"context"

	"github.com/fwojciec/cabinet"
)

var _ cabinet.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of cabinet.ConfigService.
type ConfigService struct {
	GetFn          func(ctx context.Context, key string) (cabinet.Value, error)
	GetOrDefaultFn func(ctx context.Context, key string, def cabinet.Value) (cabinet.Value, error)
	SetFn          func(ctx context.Context, key string, value cabinet.Value) error
	CreateFn       func(ctx context.Context, entry cabinet.ConfigEntry) (cabinet.Value, error)
	ResetFn        func(ctx context.Context, key string) error
	ListFn         func(ctx context.Context) (map[string]cabinet.ConfigEntry, error)
}

func (s *ConfigService) Get(ctx context.Context, key string) (cabinet.Value, error) {
	return s.GetFn(ctx, key)
}

func (s *ConfigService) GetOrDefault(ctx context.Context, key string, def cabinet.Value) (cabinet.Value, error) {
	return s.GetOrDefaultFn(ctx, key, def)
}

func (s *ConfigService) Set(ctx context.Context, key string, value cabinet.Value) error {
	return s.SetFn(ctx, key, value)
}

func (s *ConfigService) Create(ctx context.Context, entry cabinet.ConfigEntry) (cabinet.Value, error) {
	return s.CreateFn(ctx, entry)
}

func (s *ConfigService) Reset(ctx context.Context, key string) error {
	return s.ResetFn(ctx, key)
}

func (s *ConfigService) List(ctx context.Context) (map[string]cabinet.ConfigEntry, error) {
	return s.ListFn(ctx)
}
