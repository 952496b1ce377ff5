package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/cabinet"
)

// Ensure CheckoutWriter implements cabinet.CheckoutWriter at compile time.
var _ cabinet.CheckoutWriter = (*CheckoutWriter)(nil)

// CheckoutWriter writes checked-out content atomically. Content lands in a
// temporary file in the target directory and is renamed into place, so a
// reader never sees a partial file.
type CheckoutWriter struct {
	// Overwrite allows replacing an existing file at the target path.
	Overwrite bool
}

// NewCheckoutWriter creates a new CheckoutWriter.
func NewCheckoutWriter(overwrite bool) *CheckoutWriter {
	return &CheckoutWriter{Overwrite: overwrite}
}

// WriteFile writes content to dir/name. Returns ECONFLICT if the target
// exists and Overwrite is false.
func (w *CheckoutWriter) WriteFile(ctx context.Context, dir string, name string, content []byte) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", cabinet.Errorf(cabinet.EINVALID, "invalid file name %q", name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", pathError("create directory", dir, err)
	}

	target := filepath.Join(dir, name)
	if !w.Overwrite {
		if _, err := os.Lstat(target); err == nil {
			return "", cabinet.Errorf(cabinet.ECONFLICT, "%s already exists", target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", pathError("stat", target, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", pathError("create", target, err)
	}
	tmpName := tmp.Name()

	commit := func() error {
		if _, err := tmp.Write(content); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		if err := os.Chmod(tmpName, 0644); err != nil {
			return err
		}
		return os.Rename(tmpName, target)
	}

	if err := commit(); err != nil {
		os.Remove(tmpName)
		return "", pathError("write", target, err)
	}
	return target, nil
}
