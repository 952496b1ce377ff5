package mock

import (
	"context"

	"github.com/fwojciec/cabinet"
)

var _ cabinet.FileSystem = (*FileSystem)(nil)

// FileSystem is a mock implementation of cabinet.FileSystem.
type FileSystem struct {
	DigestFn func(path string) (string, error)
	SizeFn   func(path string) (int64, error)
	LoadFn   func(path string) (*cabinet.File, error)
	LocateFn func(path string, checksum string) (*cabinet.Incarnation, error)
}

func (s *FileSystem) Digest(path string) (string, error) {
	return s.DigestFn(path)
}

func (s *FileSystem) Size(path string) (int64, error) {
	return s.SizeFn(path)
}

func (s *FileSystem) Load(path string) (*cabinet.File, error) {
	return s.LoadFn(path)
}

func (s *FileSystem) Locate(path string, checksum string) (*cabinet.Incarnation, error) {
	return s.LocateFn(path, checksum)
}

var _ cabinet.CheckinRecorder = (*CheckinRecorder)(nil)

// CheckinRecorder is a mock implementation of cabinet.CheckinRecorder.
type CheckinRecorder struct {
	RecordCheckinFn func(ctx context.Context, file *cabinet.File, inc *cabinet.Incarnation) error
}

func (r *CheckinRecorder) RecordCheckin(ctx context.Context, file *cabinet.File, inc *cabinet.Incarnation) error {
	return r.RecordCheckinFn(ctx, file, inc)
}
