package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/cabinet"
)

// Compile-time interface verification.
var _ cabinet.FileService = (*FileService)(nil)

// FileService implements cabinet.FileService using SQLite.
type FileService struct {
	db *DB
}

// NewFileService creates a new FileService.
func NewFileService(db *DB) *FileService {
	return &FileService{db: db}
}

// FindFileByChecksum retrieves a file, including its content.
func (s *FileService) FindFileByChecksum(ctx context.Context, checksum string) (*cabinet.File, error) {
	if err := s.db.ready(); err != nil {
		return nil, err
	}

	var file cabinet.File
	var filedAt, lastUpdated string

	err := s.db.QueryRowContext(ctx, `
		SELECT checksum, url, filed_at, last_updated, name, size, mime_type, content
		FROM file
		WHERE checksum = ?
	`, checksum).Scan(&file.Checksum, &file.URL, &filedAt, &lastUpdated, &file.Name,
		&file.Size, &file.MimeType, &file.Content)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, cabinet.Errorf(cabinet.ENOTFOUND, "file %q not found", checksum)
	}
	if err != nil {
		return nil, storageError("find file", err)
	}

	if file.FiledAt, err = parseTime("filed_at", filedAt); err != nil {
		return nil, err
	}
	if file.LastUpdated, err = parseTime("last_updated", lastUpdated); err != nil {
		return nil, err
	}

	return &file, nil
}

// FindFiles retrieves files matching the filter, newest first.
func (s *FileService) FindFiles(ctx context.Context, filter cabinet.FileFilter) ([]*cabinet.File, error) {
	if err := s.db.ready(); err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT checksum, url, filed_at, last_updated, name, size, mime_type FROM file WHERE 1=1")

	if filter.Checksum != nil {
		query.WriteString(" AND checksum = ?")
		args = append(args, *filter.Checksum)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Query != nil {
		pattern := "%" + escapeLike(*filter.Query) + "%"
		query.WriteString(` AND (name LIKE ? ESCAPE '\' OR url LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query.WriteString(" ORDER BY filed_at DESC, checksum ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, storageError("find files", err)
	}
	defer rows.Close()

	var files []*cabinet.File
	for rows.Next() {
		var file cabinet.File
		var filedAt, lastUpdated string

		if err := rows.Scan(&file.Checksum, &file.URL, &filedAt, &lastUpdated, &file.Name,
			&file.Size, &file.MimeType); err != nil {
			return nil, storageError("scan file", err)
		}

		if file.FiledAt, err = parseTime("filed_at", filedAt); err != nil {
			return nil, err
		}
		if file.LastUpdated, err = parseTime("last_updated", lastUpdated); err != nil {
			return nil, err
		}

		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("find files", err)
	}

	return files, nil
}

// PutFile inserts a new file or refreshes the name of an existing one.
func (s *FileService) PutFile(ctx context.Context, file *cabinet.File) error {
	if err := s.db.ready(); err != nil {
		return err
	}
	return putFile(ctx, s.db, file, true)
}

// DeleteFile permanently removes a file.
func (s *FileService) DeleteFile(ctx context.Context, checksum string) error {
	if err := s.db.ready(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM file WHERE checksum = ?", checksum)
	if err != nil {
		return storageError("delete file", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("delete file", err)
	}

	if rows == 0 {
		return cabinet.Errorf(cabinet.ENOTFOUND, "file %q not found", checksum)
	}

	return nil
}

// CountFiles returns the number of filed checksums.
func (s *FileService) CountFiles(ctx context.Context) (int, error) {
	if err := s.db.ready(); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM file").Scan(&n); err != nil {
		return 0, storageError("count files", err)
	}
	return n, nil
}

// TotalSize returns the sum of all filed content sizes.
func (s *FileService) TotalSize(ctx context.Context) (int64, error) {
	if err := s.db.ready(); err != nil {
		return 0, err
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(size), 0) FROM file").Scan(&n); err != nil {
		return 0, storageError("sum file sizes", err)
	}
	return n, nil
}

// putFile writes file keyed by checksum. Content, size and filed_at of an
// existing row are never changed. With refresh set, an existing row takes
// the new name and last_updated; otherwise it is left untouched.
func putFile(ctx context.Context, q querier, file *cabinet.File, refresh bool) error {
	if err := file.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if file.FiledAt.IsZero() {
		file.FiledAt = now
	}
	file.LastUpdated = now

	content := file.Content
	if content == nil {
		content = []byte{}
	}

	conflict := "DO NOTHING"
	if refresh {
		conflict = "DO UPDATE SET name = excluded.name, last_updated = excluded.last_updated"
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO file (checksum, url, filed_at, last_updated, name, size, mime_type, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(checksum) `+conflict,
		file.Checksum, file.URL, formatTime(file.FiledAt), formatTime(file.LastUpdated),
		file.Name, file.Size, file.MimeType, content)
	if err != nil {
		return storageError("put file", err)
	}
	return nil
}
