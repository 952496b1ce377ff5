package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/fwojciec/cabinet"
)

// Compile-time interface verification.
var _ cabinet.ConfigService = (*ConfigService)(nil)

// ConfigService implements cabinet.ConfigService using SQLite.
// Values are stored in their tagged JSON encoding.
type ConfigService struct {
	db *DB
}

// NewConfigService creates a new ConfigService.
func NewConfigService(db *DB) *ConfigService {
	return &ConfigService{db: db}
}

// Seed creates each entry, leaving existing system keys untouched.
func (s *ConfigService) Seed(ctx context.Context, entries []cabinet.ConfigEntry) error {
	for _, entry := range entries {
		if _, err := s.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the stored value for key.
func (s *ConfigService) Get(ctx context.Context, key string) (cabinet.Value, error) {
	if err := s.db.ready(); err != nil {
		return cabinet.Value{}, configUnavailable(err)
	}

	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return cabinet.Value{}, cabinet.Errorf(cabinet.ENOTFOUND, "configuration key %q not found", key)
	}
	if err != nil {
		return cabinet.Value{}, storageError("get config", err)
	}

	return decodeValue(key, raw)
}

// GetOrDefault returns the stored value for key, creating missing user keys.
func (s *ConfigService) GetOrDefault(ctx context.Context, key string, def cabinet.Value) (cabinet.Value, error) {
	v, err := s.Get(ctx, key)
	if cabinet.ErrorCode(err) != cabinet.ENOTFOUND || def.IsZero() {
		return v, err
	}

	if !cabinet.IsUserKey(key) {
		return def, nil
	}
	return s.Create(ctx, cabinet.ConfigEntry{Key: key, Value: def, Default: &def})
}

// Set updates the value of an existing key.
func (s *ConfigService) Set(ctx context.Context, key string, value cabinet.Value) error {
	if err := s.db.ready(); err != nil {
		return configUnavailable(err)
	}
	if value.IsZero() {
		return cabinet.Errorf(cabinet.EINVALID, "config value required for %q", key)
	}

	raw, err := encodeValue(value)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "UPDATE config SET value = ? WHERE key = ?", raw, key)
	if err != nil {
		return storageError("set config", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("set config", err)
	}
	if rows == 0 {
		return cabinet.Errorf(cabinet.ENOTFOUND, "configuration key %q does not exist", key)
	}
	return nil
}

// Create defines a key and returns its resulting value.
func (s *ConfigService) Create(ctx context.Context, entry cabinet.ConfigEntry) (cabinet.Value, error) {
	if err := s.db.ready(); err != nil {
		return cabinet.Value{}, configUnavailable(err)
	}
	if err := entry.Validate(); err != nil {
		return cabinet.Value{}, err
	}

	raw, err := encodeValue(entry.Value)
	if err != nil {
		return cabinet.Value{}, err
	}

	var def sql.NullString
	if entry.Default != nil && !entry.Default.IsZero() {
		encoded, err := encodeValue(*entry.Default)
		if err != nil {
			return cabinet.Value{}, err
		}
		def = sql.NullString{String: encoded, Valid: true}
	}

	if cabinet.IsUserKey(entry.Key) {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO config (key, value, default_value, description)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				default_value = excluded.default_value,
				description = excluded.description
		`, entry.Key, raw, def, entry.Description)
		if err != nil {
			return cabinet.Value{}, storageError("create config", err)
		}
		return entry.Value, nil
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO config (key, value, default_value, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`, entry.Key, raw, def, entry.Description)
	if err != nil {
		return cabinet.Value{}, storageError("create config", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return cabinet.Value{}, storageError("create config", err)
	}
	if rows == 0 {
		return s.Get(ctx, entry.Key)
	}
	return entry.Value, nil
}

// Reset sets the value of key back to its recorded default.
func (s *ConfigService) Reset(ctx context.Context, key string) error {
	if err := s.db.ready(); err != nil {
		return configUnavailable(err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE config SET value = default_value
		WHERE key = ? AND default_value IS NOT NULL
	`, key)
	if err != nil {
		return storageError("reset config", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("reset config", err)
	}
	if rows == 0 {
		return cabinet.Errorf(cabinet.ENOTFOUND, "configuration key %q not found or has no default value", key)
	}
	return nil
}

// List returns every entry keyed by name.
func (s *ConfigService) List(ctx context.Context) (map[string]cabinet.ConfigEntry, error) {
	if err := s.db.ready(); err != nil {
		return nil, configUnavailable(err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT key, value, default_value, description FROM config ORDER BY key")
	if err != nil {
		return nil, storageError("list config", err)
	}
	defer rows.Close()

	entries := make(map[string]cabinet.ConfigEntry)
	for rows.Next() {
		var entry cabinet.ConfigEntry
		var raw string
		var def sql.NullString

		if err := rows.Scan(&entry.Key, &raw, &def, &entry.Description); err != nil {
			return nil, storageError("scan config", err)
		}

		if entry.Value, err = decodeValue(entry.Key, raw); err != nil {
			return nil, err
		}
		if def.Valid {
			v, err := decodeValue(entry.Key, def.String)
			if err != nil {
				return nil, err
			}
			entry.Default = &v
		}

		entries[entry.Key] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list config", err)
	}

	return entries, nil
}

func configUnavailable(err error) error {
	return cabinet.Errorf(cabinet.EUNAVAILABLE, "configuration store unavailable: %s", cabinet.ErrorMessage(err))
}

func encodeValue(v cabinet.Value) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", cabinet.Errorf(cabinet.EINVALID, "failed to encode value: %v", err)
	}
	return string(b), nil
}

func decodeValue(key, raw string) (cabinet.Value, error) {
	var v cabinet.Value
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return cabinet.Value{}, cabinet.Errorf(cabinet.EINTERNAL, "corrupt value for %q: %v", key, err)
	}
	return v, nil
}
