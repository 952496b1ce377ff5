package cabinet_test

import (
	"testing"

	"github.com/fwojciec/cabinet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	entries := cabinet.DefaultConfig()

	byKey := make(map[string]cabinet.ConfigEntry, len(entries))
	for _, e := range entries {
		require.NoError(t, e.Validate())
		require.NotNil(t, e.Default, e.Key)
		assert.Equal(t, e.Value, *e.Default, e.Key)
		assert.False(t, cabinet.IsUserKey(e.Key), e.Key)
		byKey[e.Key] = e
	}

	assert.Equal(t, cabinet.StringValue("Filing Cabinet"), byKey[cabinet.KeyCabinetName].Value)
	assert.Equal(t, cabinet.IntValue(104857600), byKey[cabinet.KeyCheckinMaxSize].Value)
	assert.Equal(t, cabinet.BoolValue(true), byKey[cabinet.KeyIndexingRecursive].Value)
	assert.Equal(t, cabinet.BoolValue(false), byKey[cabinet.KeyIndexingFollowLinks].Value)
	assert.Equal(t, cabinet.StringsValue(".txt", ".pdf", ".doc", ".docx"), byKey[cabinet.KeyIndexExtensions].Value)
}

func TestIsUserKey(t *testing.T) {
	t.Parallel()

	assert.True(t, cabinet.IsUserKey("user.editor"))
	assert.False(t, cabinet.IsUserKey("username"))
	assert.False(t, cabinet.IsUserKey(cabinet.KeyCabinetName))
}

func TestConfigEntry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry cabinet.ConfigEntry
	}{
		{"empty key", cabinet.ConfigEntry{Value: cabinet.IntValue(1)}},
		{"whitespace in key", cabinet.ConfigEntry{Key: "bad key", Value: cabinet.IntValue(1)}},
		{"missing value", cabinet.ConfigEntry{Key: "system.x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.entry.Validate()
			assert.Equal(t, cabinet.EINVALID, cabinet.ErrorCode(err))
		})
	}
}
