// Package filing orchestrates checkin, checkout and indexing of content
// across the file and incarnation stores.
package filing

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/bloom"
)

// knownURLFalsePositiveRate sizes the pre-filter of known incarnation URLs.
const knownURLFalsePositiveRate = 0.01

// Ensure Service implements cabinet.FilingService at compile time.
var _ cabinet.FilingService = (*Service)(nil)

// Service implements cabinet.FilingService.
type Service struct {
	Files        cabinet.FileService
	Incarnations cabinet.IncarnationService
	Config       cabinet.ConfigService
	FS           cabinet.FileSystem
	Recorder     cabinet.CheckinRecorder
	Writer       cabinet.CheckoutWriter
}

// Checkin files the content at path and records path as an incarnation.
func (s *Service) Checkin(ctx context.Context, path string) (string, error) {
	limit, err := s.maxSize(ctx)
	if err != nil {
		return "", err
	}
	return s.checkin(ctx, path, limit)
}

func (s *Service) checkin(ctx context.Context, path string, limit int64) (string, error) {
	size, err := s.FS.Size(path)
	if err != nil {
		return "", err
	}
	if size > limit {
		return "", tooLarge(path, size, limit)
	}

	file, err := s.FS.Load(path)
	if err != nil {
		return "", err
	}
	// The file may have grown between the size check and the read.
	if file.Size > limit {
		return "", tooLarge(path, file.Size, limit)
	}

	inc, err := s.FS.Locate(path, file.Checksum)
	if err != nil {
		return "", err
	}

	if err := s.Recorder.RecordCheckin(ctx, file, inc); err != nil {
		return "", err
	}
	return file.Checksum, nil
}

// Checkout writes the content filed under checksum into dir.
func (s *Service) Checkout(ctx context.Context, checksum string, dir string) (string, error) {
	file, err := s.Files.FindFileByChecksum(ctx, checksum)
	if err != nil {
		return "", err
	}
	return s.Writer.WriteFile(ctx, dir, file.Name, file.Content)
}

// Index records every eligible file below root as an incarnation without
// filing its content. Files already known at their location are not read.
func (s *Service) Index(ctx context.Context, root string, opts cabinet.IndexOptions) (*cabinet.IndexResult, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, pathError(root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, pathError(root, err)
	}

	p, err := s.loadPolicy(ctx, opts, true)
	if err != nil {
		return nil, err
	}

	known, err := s.knownURLs(ctx, root, info.IsDir())
	if err != nil {
		return nil, err
	}

	result := &cabinet.IndexResult{Discovered: []string{}}
	visit := func(ctx context.Context, path, rel string) error {
		if !p.allows(filepath.Base(path)) {
			result.Skipped++
			return nil
		}

		if known.Test(path) {
			_, err := s.Incarnations.FindIncarnationByURL(ctx, path)
			if err == nil {
				result.Known++
				return nil
			}
			if cabinet.ErrorCode(err) != cabinet.ENOTFOUND {
				return err
			}
		}

		checksum, err := s.FS.Digest(path)
		if err != nil {
			result.Skipped++
			return nil
		}
		inc, err := s.FS.Locate(path, checksum)
		if err != nil {
			result.Skipped++
			return nil
		}
		if err := s.Incarnations.PutIncarnation(ctx, inc); err != nil {
			return err
		}
		known.Add(inc.URL)
		result.Discovered = append(result.Discovered, inc.URL)
		return nil
	}

	if !info.IsDir() {
		if err := visit(ctx, root, filepath.Base(root)); err != nil {
			return nil, err
		}
		return result, nil
	}

	w := &walker{
		root:   root,
		policy: p,
		visit:  visit,
		skip:   func(string) { result.Skipped++ },
	}
	if err := w.walk(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// knownURLs loads the incarnation URLs already recorded below root into a
// pre-filter.
func (s *Service) knownURLs(ctx context.Context, root string, isDir bool) (*bloom.Filter, error) {
	prefix := root
	if isDir && !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	incs, err := s.Incarnations.FindIncarnations(ctx, cabinet.IncarnationFilter{URLPrefix: &prefix})
	if err != nil {
		return nil, err
	}

	f := bloom.NewFilter(uint(2*len(incs)), knownURLFalsePositiveRate)
	for _, inc := range incs {
		f.Add(inc.URL)
	}
	return f, nil
}

// Add checks in the file at path, or every file below it when path is a
// directory. Ignored files and files that fail to check in are skipped.
func (s *Service) Add(ctx context.Context, path string) (*cabinet.AddResult, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, pathError(path, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, pathError(path, err)
	}

	limit, err := s.maxSize(ctx)
	if err != nil {
		return nil, err
	}

	result := &cabinet.AddResult{Checksums: []string{}}
	if !info.IsDir() {
		checksum, err := s.checkin(ctx, root, limit)
		if err != nil {
			return nil, err
		}
		result.Processed = 1
		result.Checksums = append(result.Checksums, checksum)
		return result, nil
	}

	p, err := s.loadPolicy(ctx, cabinet.IndexOptions{}, false)
	if err != nil {
		return nil, err
	}

	w := &walker{
		root:   root,
		policy: p,
		visit: func(ctx context.Context, path, _ string) error {
			checksum, err := s.checkin(ctx, path, limit)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				result.Skipped++
				return nil
			}
			result.Processed++
			result.Checksums = append(result.Checksums, checksum)
			return nil
		},
		skip: func(string) { result.Skipped++ },
	}
	if err := w.walk(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// FileInfo returns the filed content matching the bytes currently at path
// and every known location of those bytes.
func (s *Service) FileInfo(ctx context.Context, path string) (*cabinet.FileInfo, error) {
	checksum, err := s.FS.Digest(path)
	if err != nil {
		return nil, err
	}

	info := &cabinet.FileInfo{Checksum: checksum}

	file, err := s.Files.FindFileByChecksum(ctx, checksum)
	switch {
	case err == nil:
		info.File = file
	case cabinet.ErrorCode(err) != cabinet.ENOTFOUND:
		return nil, err
	}

	info.Incarnations, err = s.Incarnations.FindIncarnations(ctx, cabinet.IncarnationFilter{Checksum: &checksum})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Remove deletes the file filed under checksum. Its incarnations remain.
func (s *Service) Remove(ctx context.Context, checksum string) error {
	return s.Files.DeleteFile(ctx, checksum)
}

// Search returns files whose name or origin URL contains query. An empty
// query returns every file.
func (s *Service) Search(ctx context.Context, query string) ([]*cabinet.File, error) {
	var filter cabinet.FileFilter
	if query != "" {
		filter.Query = &query
	}
	return s.Files.FindFiles(ctx, filter)
}

// Statistics summarizes the cabinet.
func (s *Service) Statistics(ctx context.Context) (*cabinet.Statistics, error) {
	name, err := s.stringSetting(ctx, cabinet.KeyCabinetName)
	if err != nil {
		return nil, err
	}
	version, err := s.stringSetting(ctx, cabinet.KeySchemaVersion)
	if err != nil {
		return nil, err
	}

	files, err := s.Files.CountFiles(ctx)
	if err != nil {
		return nil, err
	}
	incs, err := s.Incarnations.CountIncarnations(ctx)
	if err != nil {
		return nil, err
	}
	size, err := s.Files.TotalSize(ctx)
	if err != nil {
		return nil, err
	}

	return &cabinet.Statistics{
		Name:             name,
		SchemaVersion:    version,
		FileCount:        files,
		IncarnationCount: incs,
		TotalSize:        size,
	}, nil
}

func (s *Service) stringSetting(ctx context.Context, key string) (string, error) {
	v, err := s.setting(ctx, key)
	if err != nil {
		return "", err
	}
	str, err := v.AsString()
	if err != nil {
		return "", settingError(key, err)
	}
	return str, nil
}

func tooLarge(path string, size, limit int64) error {
	return cabinet.Errorf(cabinet.ETOOLARGE, "%s is %d bytes, exceeds limit of %d bytes", path, size, limit)
}

func pathError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return cabinet.Errorf(cabinet.ENOTFOUND, "%s not found", path)
	}
	if cabinet.ErrorCode(err) != cabinet.EINTERNAL {
		return err
	}
	return cabinet.Errorf(cabinet.EIO, "%s: %v", path, err)
}
