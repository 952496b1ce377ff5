package cabinet

import (
	"context"
	"time"
)

// File represents a unique piece of content, identified by its checksum.
type File struct {
	Checksum    string    `json:"checksum"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mimeType"`
	Content     []byte    `json:"-"`
	FiledAt     time.Time `json:"filedAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Validate returns an error if the file contains invalid fields.
func (f *File) Validate() error {
	if f.Checksum == "" {
		return Errorf(EINVALID, "file checksum required")
	}
	if f.Name == "" {
		return Errorf(EINVALID, "file name required")
	}
	return nil
}

// FileService represents a service for managing filed content.
type FileService interface {
	// FindFileByChecksum retrieves a file, including its content.
	// Returns ENOTFOUND if no file has the checksum.
	FindFileByChecksum(ctx context.Context, checksum string) (*File, error)

	// FindFiles retrieves files matching the filter. Content is not loaded.
	FindFiles(ctx context.Context, filter FileFilter) ([]*File, error)

	// PutFile inserts the file if its checksum is new. Otherwise only the
	// name and last-updated timestamp of the existing row are refreshed;
	// content is never rewritten.
	PutFile(ctx context.Context, file *File) error

	// DeleteFile permanently removes a file.
	// Returns ENOTFOUND if no file has the checksum.
	DeleteFile(ctx context.Context, checksum string) error

	// CountFiles returns the number of filed checksums.
	CountFiles(ctx context.Context) (int, error)

	// TotalSize returns the sum of all filed content sizes.
	TotalSize(ctx context.Context) (int64, error)
}

// FileFilter represents a filter for FindFiles.
type FileFilter struct {
	Checksum *string `json:"checksum"`
	Name     *string `json:"name"`

	// Query matches files whose name or origin URL contains it.
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
