package cabinet

import (
	"context"
	"time"
)

// IncarnationKind describes how a location holds its content.
type IncarnationKind string

// IncarnationKind constants.
const (
	KindFile     IncarnationKind = "file"
	KindSymlink  IncarnationKind = "symlink"
	KindHardlink IncarnationKind = "hardlink"
)

// Incarnation represents one filesystem location currently holding content.
// Checksum is a lookup key only; the referenced File may not exist.
type Incarnation struct {
	URL         string          `json:"url"`
	Device      string          `json:"device"`
	Checksum    string          `json:"checksum"`
	Kind        IncarnationKind `json:"kind"`
	ForwardURL  string          `json:"forwardUrl,omitempty"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// Validate returns an error if the incarnation contains invalid fields.
func (i *Incarnation) Validate() error {
	if i.URL == "" {
		return Errorf(EINVALID, "incarnation URL required")
	}
	if i.Checksum == "" {
		return Errorf(EINVALID, "incarnation checksum required")
	}
	switch i.Kind {
	case KindFile, KindSymlink, KindHardlink:
	default:
		return Errorf(EINVALID, "invalid incarnation kind %q", i.Kind)
	}
	return nil
}

// IncarnationService represents a service for managing file locations.
type IncarnationService interface {
	// FindIncarnationByURL retrieves the incarnation at a location.
	// Returns ENOTFOUND if the location is unknown.
	FindIncarnationByURL(ctx context.Context, url string) (*Incarnation, error)

	// FindIncarnations retrieves incarnations matching the filter.
	FindIncarnations(ctx context.Context, filter IncarnationFilter) ([]*Incarnation, error)

	// PutIncarnation inserts the incarnation, or overwrites the row already
	// recorded at its URL.
	PutIncarnation(ctx context.Context, inc *Incarnation) error

	// DeleteIncarnation permanently removes an incarnation.
	// Returns ENOTFOUND if the location is unknown.
	DeleteIncarnation(ctx context.Context, url string) error

	// CountIncarnations returns the number of known locations.
	CountIncarnations(ctx context.Context) (int, error)
}

// IncarnationFilter represents a filter for FindIncarnations.
type IncarnationFilter struct {
	Checksum  *string `json:"checksum"`
	Device    *string `json:"device"`
	URLPrefix *string `json:"urlPrefix"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
