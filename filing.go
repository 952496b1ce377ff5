package cabinet

import "context"

// FilingService orchestrates checkin, checkout, indexing and queries over
// the file and incarnation stores.
type FilingService interface {
	// Checkin files the content at path and records path as one of its
	// incarnations. Returns ETOOLARGE if the file exceeds the configured
	// checkin size limit, in which case nothing is recorded.
	Checkin(ctx context.Context, path string) (checksum string, err error)

	// Checkout writes the content filed under checksum to dir, using the
	// file's recorded name. Returns ENOTFOUND if nothing is filed under it.
	Checkout(ctx context.Context, checksum string, dir string) (path string, err error)

	// Index records the location of every eligible file under root without
	// filing content. Only locations not already known are reported.
	Index(ctx context.Context, root string, opts IndexOptions) (*IndexResult, error)

	// Add checks in a single file, or every eligible file below a directory.
	Add(ctx context.Context, path string) (*AddResult, error)

	// FileInfo returns the filed content matching the current bytes at path,
	// if any, together with every known location of those bytes.
	FileInfo(ctx context.Context, path string) (*FileInfo, error)

	// Remove deletes the file filed under checksum. Incarnations are kept.
	// Returns ENOTFOUND if nothing is filed under it.
	Remove(ctx context.Context, checksum string) error

	// Search returns files whose name or origin URL contains query.
	Search(ctx context.Context, query string) ([]*File, error)

	// Statistics summarizes the cabinet.
	Statistics(ctx context.Context) (*Statistics, error)
}

// IndexOptions overrides indexing policy for a single Index call.
// Nil fields fall back to the configuration store.
type IndexOptions struct {
	Recursive      *bool
	FollowSymlinks *bool
}

// IndexResult holds the outcome of an Index call.
type IndexResult struct {
	// Discovered lists URLs that had no incarnation before this call.
	Discovered []string

	// Known counts eligible files already recorded at their URL.
	Known int

	// Skipped counts entries excluded by policy or that failed to read.
	Skipped int
}

// AddResult holds the outcome of an Add call.
type AddResult struct {
	Processed int
	Skipped   int
	Checksums []string
}

// FileInfo is the deduplicated view of one piece of content.
// File is nil if the content has been indexed but never checked in.
type FileInfo struct {
	Checksum     string         `json:"checksum"`
	File         *File          `json:"file"`
	Incarnations []*Incarnation `json:"incarnations"`
}

// Statistics summarizes the contents of a cabinet.
type Statistics struct {
	Name             string `json:"name"`
	SchemaVersion    string `json:"schemaVersion"`
	FileCount        int    `json:"fileCount"`
	IncarnationCount int    `json:"incarnationCount"`
	TotalSize        int64  `json:"totalSize"`
}

// FileSystem reads content and location details from the local filesystem.
type FileSystem interface {
	// Digest returns the checksum of the content at path, following symlinks.
	Digest(path string) (string, error)

	// Size returns the size in bytes of the content at path without reading
	// it, following symlinks.
	Size(path string) (int64, error)

	// Load reads the content at path once and returns it as a File with its
	// checksum computed from the same bytes.
	Load(path string) (*File, error)

	// Locate describes path as an incarnation of checksum.
	Locate(path string, checksum string) (*Incarnation, error)
}

// CheckinRecorder persists a checked-in file and its incarnation together.
type CheckinRecorder interface {
	// RecordCheckin stores file if its checksum is new and upserts inc,
	// committing both or neither.
	RecordCheckin(ctx context.Context, file *File, inc *Incarnation) error
}

// CheckoutWriter materializes filed content on disk.
type CheckoutWriter interface {
	// WriteFile writes content to dir/name and returns the final path.
	WriteFile(ctx context.Context, dir string, name string, content []byte) (string, error)
}
