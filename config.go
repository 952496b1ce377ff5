package cabinet

import (
	"context"
	"strings"
)

// Configuration keys read by the filing service.
const (
	KeyCabinetName         = "cabinet.name"
	KeySchemaVersion       = "database.schema.version"
	KeyIndexExtensions     = "file.index.extensions"
	KeyCheckinMaxSize      = "file.checkin.max_size"
	KeyStorageCompression  = "storage.compression"
	KeyStorageEncryption   = "storage.encryption"
	KeyIndexingRecursive   = "indexing.recursive"
	KeyIndexingFollowLinks = "indexing.follow_symlinks"
	KeyIndexingIgnoreGlobs = "indexing.ignore_patterns"
)

// UserKeyPrefix marks keys owned by the user namespace.
const UserKeyPrefix = "user."

// IsUserKey reports whether key lives in the user namespace. User keys are
// created on first read and are always overwritten by Create.
func IsUserKey(key string) bool {
	return strings.HasPrefix(key, UserKeyPrefix)
}

// ConfigEntry represents one named policy value.
type ConfigEntry struct {
	Key         string `json:"-" yaml:"-"`
	Value       Value  `json:"value"`
	Default     *Value `json:"default"`
	Description string `json:"description"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *ConfigEntry) Validate() error {
	if e.Key == "" {
		return Errorf(EINVALID, "config key required")
	}
	if strings.TrimSpace(e.Key) != e.Key || strings.ContainsAny(e.Key, " \t\n") {
		return Errorf(EINVALID, "config key %q must not contain whitespace", e.Key)
	}
	if e.Value.IsZero() {
		return Errorf(EINVALID, "config value required for %q", e.Key)
	}
	return nil
}

// ConfigService represents a persistent, namespaced configuration store.
// All methods return EUNAVAILABLE if the store has not been opened.
type ConfigService interface {
	// Get returns the stored value for key.
	// Returns ENOTFOUND if the key does not exist.
	Get(ctx context.Context, key string) (Value, error)

	// GetOrDefault returns the stored value for key. A missing user key is
	// created with def as its value and default; any other missing key
	// returns def without storing it.
	GetOrDefault(ctx context.Context, key string, def Value) (Value, error)

	// Set updates the value of an existing key.
	// Returns ENOTFOUND if the key was never created.
	Set(ctx context.Context, key string, value Value) error

	// Create defines a key and returns its resulting value. For an existing
	// system key this is a no-op returning the stored value; user keys are
	// always rewritten.
	Create(ctx context.Context, entry ConfigEntry) (Value, error)

	// Reset sets the value of key back to its recorded default.
	// Returns ENOTFOUND if the key or its default does not exist.
	Reset(ctx context.Context, key string) error

	// List returns every entry keyed by name.
	List(ctx context.Context) (map[string]ConfigEntry, error)
}

// DefaultConfig returns the system entries seeded into a new store.
func DefaultConfig() []ConfigEntry {
	entry := func(key string, v Value, desc string) ConfigEntry {
		def := v
		return ConfigEntry{Key: key, Value: v, Default: &def, Description: desc}
	}
	return []ConfigEntry{
		entry(KeyCabinetName, StringValue("Filing Cabinet"), "Name of the filing cabinet"),
		entry(KeySchemaVersion, StringValue("1.0.0"), "Database schema version"),
		entry(KeyIndexExtensions, StringsValue(".txt", ".pdf", ".doc", ".docx"), "List of file extensions to index"),
		entry(KeyCheckinMaxSize, IntValue(100*1024*1024), "Maximum file size in bytes (100MB)"),
		entry(KeyStorageCompression, StringValue("none"), "Storage compression method"),
		entry(KeyStorageEncryption, StringValue("none"), "Storage encryption method"),
		entry(KeyIndexingRecursive, BoolValue(true), "Whether to recursively index subdirectories"),
		entry(KeyIndexingFollowLinks, BoolValue(false), "Whether to follow symbolic links during indexing"),
		entry(KeyIndexingIgnoreGlobs, StringsValue(".git/*", "*.pyc", "__pycache__/*"), "Patterns to ignore during indexing"),
	}
}
