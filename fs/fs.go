// Package fs reads content and location details from the local filesystem
// and materializes filed content back onto it.
package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/cabinet"
	"github.com/gabriel-vasile/mimetype"
)

// chunkSize is the read size used when streaming content through the digest.
const chunkSize = 64 * 1024

// Ensure FileSystem implements cabinet.FileSystem at compile time.
var _ cabinet.FileSystem = (*FileSystem)(nil)

// FileSystem implements cabinet.FileSystem on the local disk.
type FileSystem struct {
	// Device identifies this host on every incarnation Locate returns.
	Device string
}

// NewFileSystem returns a FileSystem tagged with the current device id.
func NewFileSystem() *FileSystem {
	return &FileSystem{Device: DeviceID()}
}

// Digest returns the hex SHA-256 of the content at path, following symlinks.
func (s *FileSystem) Digest(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", pathError("resolve", path, err)
	}

	f, err := os.Open(resolved)
	if err != nil {
		return "", pathError("open", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", pathError("read", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads the content at path once and describes it as a File.
// Name and URL describe path itself, not the target of a symlink.
func (s *FileSystem) Load(path string) (*cabinet.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, pathError("resolve", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, pathError("resolve", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, pathError("read", path, err)
	}

	sum := sha256.Sum256(data)
	return &cabinet.File{
		Checksum: hex.EncodeToString(sum[:]),
		URL:      abs,
		Name:     filepath.Base(abs),
		Size:     int64(len(data)),
		MimeType: mimetype.Detect(data).String(),
		Content:  data,
	}, nil
}

// Size returns the size in bytes of the content at path, following symlinks.
func (s *FileSystem) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, pathError("stat", path, err)
	}
	if info.IsDir() {
		return 0, cabinet.Errorf(cabinet.EINVALID, "%s is a directory", path)
	}
	return info.Size(), nil
}

// Locate describes path as an incarnation of checksum.
func (s *FileSystem) Locate(path string, checksum string) (*cabinet.Incarnation, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, pathError("resolve", path, err)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		return nil, pathError("stat", path, err)
	}

	inc := &cabinet.Incarnation{
		URL:      abs,
		Device:   s.Device,
		Checksum: checksum,
		Kind:     cabinet.KindFile,
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, pathError("resolve", path, err)
		}
		inc.Kind = cabinet.KindSymlink
		inc.ForwardURL = target
	default:
		n, err := linkCount(abs)
		if err != nil {
			return nil, pathError("stat", path, err)
		}
		if n > 1 {
			inc.Kind = cabinet.KindHardlink
		}
	}
	return inc, nil
}

// pathError translates a filesystem error into a domain error.
func pathError(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return cabinet.Errorf(cabinet.ENOTFOUND, "%s not found", path)
	}
	return cabinet.Errorf(cabinet.EIO, "%s %s: %v", op, path, err)
}
