package mock

import (
	"context"

	"github.com/fwojciec/cabinet"
)

var _ cabinet.IncarnationService = (*IncarnationService)(nil)

// IncarnationService is a mock implementation of cabinet.IncarnationService.
type IncarnationService struct {
	FindIncarnationByURLFn func(ctx context.Context, url string) (*cabinet.Incarnation, error)
	FindIncarnationsFn     func(ctx context.Context, filter cabinet.IncarnationFilter) ([]*cabinet.Incarnation, error)
	PutIncarnationFn       func(ctx context.Context, inc *cabinet.Incarnation) error
	DeleteIncarnationFn    func(ctx context.Context, url string) error
	CountIncarnationsFn    func(ctx context.Context) (int, error)
}

func (s *IncarnationService) FindIncarnationByURL(ctx context.Context, url string) (*cabinet.Incarnation, error) {
	return s.FindIncarnationByURLFn(ctx, url)
}

func (s *IncarnationService) FindIncarnations(ctx context.Context, filter cabinet.IncarnationFilter) ([]*cabinet.Incarnation, error) {
	return s.FindIncarnationsFn(ctx, filter)
}

func (s *IncarnationService) PutIncarnation(ctx context.Context, inc *cabinet.Incarnation) error {
	return s.PutIncarnationFn(ctx, inc)
}

func (s *IncarnationService) DeleteIncarnation(ctx context.Context, url string) error {
	return s.DeleteIncarnationFn(ctx, url)
}

func (s *IncarnationService) CountIncarnations(ctx context.Context) (int, error) {
	return s.CountIncarnationsFn(ctx)
}
