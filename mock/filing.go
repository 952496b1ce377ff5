package mock

import (
	"context"

	"github.com/fwojciec/cabinet"
)

var _ cabinet.FilingService = (*FilingService)(nil)

// FilingService is a mock implementation of cabinet.FilingService.
type FilingService struct {
	CheckinFn    func(ctx context.Context, path string) (string, error)
	CheckoutFn   func(ctx context.Context, checksum string, dir string) (string, error)
	IndexFn      func(ctx context.Context, root string, opts cabinet.IndexOptions) (*cabinet.IndexResult, error)
	AddFn        func(ctx context.Context, path string) (*cabinet.AddResult, error)
	FileInfoFn   func(ctx context.Context, path string) (*cabinet.FileInfo, error)
	RemoveFn     func(ctx context.Context, checksum string) error
	SearchFn     func(ctx context.Context, query string) ([]*cabinet.File, error)
	StatisticsFn func(ctx context.Context) (*cabinet.Statistics, error)
}

func (s *FilingService) Checkin(ctx context.Context, path string) (string, error) {
	return s.CheckinFn(ctx, path)
}

func (s *FilingService) Checkout(ctx context.Context, checksum string, dir string) (string, error) {
	return s.CheckoutFn(ctx, checksum, dir)
}

func (s *FilingService) Index(ctx context.Context, root string, opts cabinet.IndexOptions) (*cabinet.IndexResult, error) {
	return s.IndexFn(ctx, root, opts)
}

func (s *FilingService) Add(ctx context.Context, path string) (*cabinet.AddResult, error) {
	return s.AddFn(ctx, path)
}

func (s *FilingService) FileInfo(ctx context.Context, path string) (*cabinet.FileInfo, error) {
	return s.FileInfoFn(ctx, path)
}

func (s *FilingService) Remove(ctx context.Context, checksum string) error {
	return s.RemoveFn(ctx, checksum)
}

func (s *FilingService) Search(ctx context.Context, query string) ([]*cabinet.File, error) {
	return s.SearchFn(ctx, query)
}

func (s *FilingService) Statistics(ctx context.Context) (*cabinet.Statistics, error) {
	return s.StatisticsFn(ctx)
}
