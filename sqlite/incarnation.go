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
var _ cabinet.IncarnationService = (*IncarnationService)(nil)

// IncarnationService implements cabinet.IncarnationService using SQLite.
type IncarnationService struct {
	db *DB
}

// NewIncarnationService creates a new IncarnationService.
func NewIncarnationService(db *DB) *IncarnationService {
	return &IncarnationService{db: db}
}

// FindIncarnationByURL retrieves the incarnation recorded at url.
func (s *IncarnationService) FindIncarnationByURL(ctx context.Context, url string) (*cabinet.Incarnation, error) {
	if err := s.db.ready(); err != nil {
		return nil, err
	}

	var inc cabinet.Incarnation
	var lastUpdated string

	err := s.db.QueryRowContext(ctx, `
		SELECT url, device, file_checksum, kind, forward_url, last_updated
		FROM file_incarnation
		WHERE url = ?
	`, url).Scan(&inc.URL, &inc.Device, &inc.Checksum, &inc.Kind, &inc.ForwardURL, &lastUpdated)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, cabinet.Errorf(cabinet.ENOTFOUND, "incarnation %q not found", url)
	}
	if err != nil {
		return nil, storageError("find incarnation", err)
	}

	if inc.LastUpdated, err = parseTime("last_updated", lastUpdated); err != nil {
		return nil, err
	}

	return &inc, nil
}

// FindIncarnations retrieves incarnations matching the filter, ordered by URL.
func (s *IncarnationService) FindIncarnations(ctx context.Context, filter cabinet.IncarnationFilter) ([]*cabinet.Incarnation, error) {
	if err := s.db.ready(); err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, device, file_checksum, kind, forward_url, last_updated FROM file_incarnation WHERE 1=1")

	if filter.Checksum != nil {
		query.WriteString(" AND file_checksum = ?")
		args = append(args, *filter.Checksum)
	}
	if filter.Device != nil {
		query.WriteString(" AND device = ?")
		args = append(args, *filter.Device)
	}
	if filter.URLPrefix != nil {
		query.WriteString(" AND substr(url, 1, length(?)) = ?")
		args = append(args, *filter.URLPrefix, *filter.URLPrefix)
	}

	query.WriteString(" ORDER BY url ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, storageError("find incarnations", err)
	}
	defer rows.Close()

	var incs []*cabinet.Incarnation
	for rows.Next() {
		var inc cabinet.Incarnation
		var lastUpdated string

		if err := rows.Scan(&inc.URL, &inc.Device, &inc.Checksum, &inc.Kind, &inc.ForwardURL, &lastUpdated); err != nil {
			return nil, storageError("scan incarnation", err)
		}

		if inc.LastUpdated, err = parseTime("last_updated", lastUpdated); err != nil {
			return nil, err
		}

		incs = append(incs, &inc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("find incarnations", err)
	}

	return incs, nil
}

// PutIncarnation inserts inc or overwrites the row recorded at its URL.
func (s *IncarnationService) PutIncarnation(ctx context.Context, inc *cabinet.Incarnation) error {
	if err := s.db.ready(); err != nil {
		return err
	}
	return putIncarnation(ctx, s.db, inc)
}

// DeleteIncarnation permanently removes an incarnation.
func (s *IncarnationService) DeleteIncarnation(ctx context.Context, url string) error {
	if err := s.db.ready(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM file_incarnation WHERE url = ?", url)
	if err != nil {
		return storageError("delete incarnation", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("delete incarnation", err)
	}

	if rows == 0 {
		return cabinet.Errorf(cabinet.ENOTFOUND, "incarnation %q not found", url)
	}

	return nil
}

// CountIncarnations returns the number of known locations.
func (s *IncarnationService) CountIncarnations(ctx context.Context) (int, error) {
	if err := s.db.ready(); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM file_incarnation").Scan(&n); err != nil {
		return 0, storageError("count incarnations", err)
	}
	return n, nil
}

func putIncarnation(ctx context.Context, q querier, inc *cabinet.Incarnation) error {
	if err := inc.Validate(); err != nil {
		return err
	}

	inc.LastUpdated = time.Now().UTC()

	_, err := q.ExecContext(ctx, `
		INSERT INTO file_incarnation (url, device, file_checksum, kind, forward_url, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			device = excluded.device,
			file_checksum = excluded.file_checksum,
			kind = excluded.kind,
			forward_url = excluded.forward_url,
			last_updated = excluded.last_updated
	`, inc.URL, inc.Device, inc.Checksum, string(inc.Kind), inc.ForwardURL, formatTime(inc.LastUpdated))
	if err != nil {
		return storageError("put incarnation", err)
	}
	return nil
}
