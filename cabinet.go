// Package cabinet provides a local, content-addressed file catalog.
// It files content under its SHA-256 checksum, tracks every filesystem
// location ("incarnation") holding that content, and retrieves content by
// checksum regardless of where it was found.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, fs/, slog/).
package cabinet
