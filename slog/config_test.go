package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/mock"
	cabslog "github.com/fwojciec/cabinet/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConfigService(t *testing.T) {
	t.Parallel()

	t.Run("logs writes with key and value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ConfigService{
			SetFn: func(context.Context, string, cabinet.Value) error { return nil },
			CreateFn: func(_ context.Context, entry cabinet.ConfigEntry) (cabinet.Value, error) {
				return entry.Value, nil
			},
			ResetFn: func(context.Context, string) error { return nil },
		}

		svc := cabslog.NewLoggingConfigService(inner, newLogger(&buf))
		ctx := context.Background()

		require.NoError(t, svc.Set(ctx, cabinet.KeyIndexingRecursive, cabinet.BoolValue(false)))
		_, err := svc.Create(ctx, cabinet.ConfigEntry{Key: "user.editor", Value: cabinet.StringValue("vim")})
		require.NoError(t, err)
		require.NoError(t, svc.Reset(ctx, cabinet.KeyIndexingRecursive))

		output := buf.String()
		assert.Contains(t, output, `msg="config set" key=indexing.recursive value=false`)
		assert.Contains(t, output, `msg="config create" key=user.editor value=vim`)
		assert.Contains(t, output, `msg="config reset" key=indexing.recursive`)
	})

	t.Run("logs reads at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ConfigService{
			GetFn: func(context.Context, string) (cabinet.Value, error) {
				return cabinet.StringValue("Filing Cabinet"), nil
			},
			GetOrDefaultFn: func(_ context.Context, _ string, def cabinet.Value) (cabinet.Value, error) {
				return def, nil
			},
			ListFn: func(context.Context) (map[string]cabinet.ConfigEntry, error) {
				return map[string]cabinet.ConfigEntry{}, nil
			},
		}

		svc := cabslog.NewLoggingConfigService(inner, logger)
		ctx := context.Background()

		v, err := svc.Get(ctx, cabinet.KeyCabinetName)
		require.NoError(t, err)
		assert.Equal(t, cabinet.StringValue("Filing Cabinet"), v)
		_, err = svc.GetOrDefault(ctx, "user.x", cabinet.IntValue(5))
		require.NoError(t, err)
		_, err = svc.List(ctx)
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ConfigService{
			GetFn: func(_ context.Context, key string) (cabinet.Value, error) {
				return cabinet.Value{}, cabinet.Errorf(cabinet.ENOTFOUND, "config key %q not found", key)
			},
		}

		svc := cabslog.NewLoggingConfigService(inner, newLogger(&buf))
		_, err := svc.Get(context.Background(), "system.missing")

		assert.Equal(t, cabinet.ENOTFOUND, cabinet.ErrorCode(err))
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "err=")
	})
}
