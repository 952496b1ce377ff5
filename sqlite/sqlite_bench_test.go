package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCheckin compares recording a checkin in one transaction against
// two independent writes.
func BenchmarkCheckin(b *testing.B) {
	b.Run("transaction", func(b *testing.B) {
		benchmarkCheckin(b, true)
	})

	b.Run("separate_writes", func(b *testing.B) {
		benchmarkCheckin(b, false)
	})
}

func benchmarkCheckin(b *testing.B, useTx bool) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	rec := sqlite.NewCheckinRecorder(db)
	files := sqlite.NewFileService(db)
	incs := sqlite.NewIncarnationService(db)
	content := []byte("Lorem ipsum dolor sit amet, consectetur adipiscing elit.")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		checksum := fmt.Sprintf("checksum-%d", i)
		file := &cabinet.File{Checksum: checksum, Name: "doc.txt", Size: int64(len(content)), Content: content}
		inc := &cabinet.Incarnation{URL: fmt.Sprintf("/bench/doc-%d.txt", i), Checksum: checksum, Kind: cabinet.KindFile}

		var err error
		if useTx {
			err = rec.RecordCheckin(ctx, file, inc)
		} else {
			if err = files.PutFile(ctx, file); err == nil {
				err = incs.PutIncarnation(ctx, inc)
			}
		}
		if err != nil {
			b.Fatal(err)
		}
	}
}
