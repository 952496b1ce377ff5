package mock

import (
	"context"

	"github.com/fwojciec/cabinet"
)

var _ cabinet.FileService = (*FileService)(nil)

// FileService is a mock implementation of cabinet.FileService.
type FileService struct {
	FindFileByChecksumFn func(ctx context.Context, checksum string) (*cabinet.File, error)
	FindFilesFn          func(ctx context.Context, filter cabinet.FileFilter) ([]*cabinet.File, error)
	PutFileFn            func(ctx context.Context, file *cabinet.File) error
	DeleteFileFn         func(ctx context.Context, checksum string) error
	CountFilesFn         func(ctx context.Context) (int, error)
	TotalSizeFn          func(ctx context.Context) (int64, error)
}

func (s *FileService) FindFileByChecksum(ctx context.Context, checksum string) (*cabinet.File, error) {
	return s.FindFileByChecksumFn(ctx, checksum)
}

func (s *FileService) FindFiles(ctx context.Context, filter cabinet.FileFilter) ([]*cabinet.File, error) {
	return s.FindFilesFn(ctx, filter)
}

func (s *FileService) PutFile(ctx context.Context, file *cabinet.File) error {
	return s.PutFileFn(ctx, file)
}

func (s *FileService) DeleteFile(ctx context.Context, checksum string) error {
	return s.DeleteFileFn(ctx, checksum)
}

func (s *FileService) CountFiles(ctx context.Context) (int, error) {
	return s.CountFilesFn(ctx)
}

func (s *FileService) TotalSize(ctx context.Context) (int64, error) {
	return s.TotalSizeFn(ctx)
}
