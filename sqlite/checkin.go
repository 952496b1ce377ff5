package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/cabinet"
)

// Compile-time interface verification.
var _ cabinet.CheckinRecorder = (*CheckinRecorder)(nil)

// CheckinRecorder implements cabinet.CheckinRecorder using a single SQLite
// transaction, so an incarnation never refers to a file whose write failed.
type CheckinRecorder struct {
	db *DB
}

// NewCheckinRecorder creates a new CheckinRecorder.
func NewCheckinRecorder(db *DB) *CheckinRecorder {
	return &CheckinRecorder{db: db}
}

// RecordCheckin stores file if its checksum is new and upserts inc.
func (r *CheckinRecorder) RecordCheckin(ctx context.Context, file *cabinet.File, inc *cabinet.Incarnation) error {
	if file.Checksum != inc.Checksum {
		return cabinet.Errorf(cabinet.EINVALID, "incarnation checksum %q does not match file %q", inc.Checksum, file.Checksum)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := putFile(ctx, tx, file, false); err != nil {
			return err
		}
		return putIncarnation(ctx, tx, inc)
	})
}
