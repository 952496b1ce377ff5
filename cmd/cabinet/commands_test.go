package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/cabinet"
	main "github.com/fwojciec/cabinet/cmd/cabinet"
	"github.com/fwojciec/cabinet/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(filing cabinet.FilingService, config cabinet.ConfigService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Filing: filing,
		Config: config,
	}, stdout, stderr
}

func TestCheckinCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints checksum per path", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.FilingService{
			CheckinFn: func(_ context.Context, path string) (string, error) {
				return "sum-" + path, nil
			},
		}, nil)

		err := (&main.CheckinCmd{Paths: []string{"a.txt", "b.txt"}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "sum-a.txt  a.txt")
		assert.Contains(t, stdout.String(), "sum-b.txt  b.txt")
	})

	t.Run("continues after a failure and returns it", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(&mock.FilingService{
			CheckinFn: func(_ context.Context, path string) (string, error) {
				if path == "big.iso" {
					return "", cabinet.Errorf(cabinet.ETOOLARGE, "big.iso is too large")
				}
				return "ok", nil
			},
		}, nil)

		err := (&main.CheckinCmd{Paths: []string{"big.iso", "small.txt"}}).Run(deps)

		assert.Equal(t, cabinet.ETOOLARGE, cabinet.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: big.iso is too large")
		assert.Contains(t, stdout.String(), "small.txt")
	})
}

func TestCheckoutCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the written path", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.FilingService{
			CheckoutFn: func(_ context.Context, checksum, dir string) (string, error) {
				assert.Equal(t, "abc", checksum)
				return dir + "/doc.txt", nil
			},
		}, nil)

		err := (&main.CheckoutCmd{Checksum: "abc", Dir: "/tmp"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Checked out /tmp/doc.txt")
	})

	t.Run("hints at --force on conflict", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.FilingService{
			CheckoutFn: func(context.Context, string, string) (string, error) {
				return "", cabinet.Errorf(cabinet.ECONFLICT, "/tmp/doc.txt already exists")
			},
		}, nil)

		err := (&main.CheckoutCmd{Checksum: "abc", Dir: "/tmp"}).Run(deps)

		assert.Equal(t, cabinet.ECONFLICT, cabinet.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})
}

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes overrides only when flags are set", func(t *testing.T) {
		t.Parallel()

		var got cabinet.IndexOptions
		deps, stdout, _ := newDeps(&mock.FilingService{
			IndexFn: func(_ context.Context, _ string, opts cabinet.IndexOptions) (*cabinet.IndexResult, error) {
				got = opts
				return &cabinet.IndexResult{Discovered: []string{"/data/a.txt"}, Known: 1200, Skipped: 2}, nil
			},
		}, nil)

		err := (&main.IndexCmd{Root: "/data", Flat: true}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Recursive)
		assert.False(t, *got.Recursive)
		assert.Nil(t, got.FollowSymlinks)
		assert.Contains(t, stdout.String(), "+ /data/a.txt")
		assert.Contains(t, stdout.String(), "Discovered 1, already known 1,200, skipped 2")
	})
}

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(&mock.FilingService{
		AddFn: func(context.Context, string) (*cabinet.AddResult, error) {
			return &cabinet.AddResult{Processed: 3, Skipped: 1}, nil
		},
	}, nil)

	err := (&main.AddCmd{Path: "/data"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Processed 3 files, skipped 1")
}

func TestInfoCmd_Run(t *testing.T) {
	t.Parallel()

	info := &cabinet.FileInfo{
		Checksum: "abc",
		File: &cabinet.File{
			Checksum: "abc",
			URL:      "/a/doc.txt",
			Name:     "doc.txt",
			Size:     2048,
			MimeType: "text/plain; charset=utf-8",
			FiledAt:  time.Now().Add(-2 * time.Hour),
		},
		Incarnations: []*cabinet.Incarnation{
			{URL: "/a/doc.txt", Device: "laptop", Checksum: "abc", Kind: cabinet.KindFile},
			{URL: "/b/link.txt", Device: "laptop", Checksum: "abc", Kind: cabinet.KindSymlink, ForwardURL: "/a/doc.txt"},
		},
	}
	filing := &mock.FilingService{
		FileInfoFn: func(context.Context, string) (*cabinet.FileInfo, error) { return info, nil },
	}

	t.Run("prints file details and locations", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(filing, nil)

		err := (&main.InfoCmd{Path: "/a/doc.txt"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Checksum: abc")
		assert.Contains(t, output, "Size:     2.0 KiB")
		assert.Contains(t, output, "2 hours ago")
		assert.Contains(t, output, "Locations (2):")
		assert.Contains(t, output, "-> /a/doc.txt")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(filing, nil)

		err := (&main.InfoCmd{Path: "/a/doc.txt", JSON: true}).Run(deps)

		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
		assert.Equal(t, "abc", decoded["checksum"])
		assert.Len(t, decoded["incarnations"], 2)
	})

	t.Run("reports unfiled content", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.FilingService{
			FileInfoFn: func(context.Context, string) (*cabinet.FileInfo, error) {
				return &cabinet.FileInfo{Checksum: "def"}, nil
			},
		}, nil)

		err := (&main.InfoCmd{Path: "/x.txt"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Not filed.")
	})
}

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(&mock.FilingService{
		StatisticsFn: func(context.Context) (*cabinet.Statistics, error) {
			return &cabinet.Statistics{
				Name:             "Filing Cabinet",
				SchemaVersion:    "1.0.0",
				FileCount:        1500,
				IncarnationCount: 2,
				TotalSize:        3 * 1024 * 1024,
			}, nil
		},
	}, nil)

	err := (&main.StatusCmd{}).Run(deps)

	require.NoError(t, err)
	output := stdout.String()
	assert.Contains(t, output, "Filing Cabinet (schema 1.0.0)")
	assert.Contains(t, output, "1,500")
	assert.Contains(t, output, "3.0 MiB")
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.FilingService{
			SearchFn: func(_ context.Context, query string) ([]*cabinet.File, error) {
				assert.Equal(t, "invoice", query)
				return []*cabinet.File{{Checksum: "abc", Name: "invoice.pdf", URL: "/docs/invoice.pdf", Size: 10}}, nil
			},
		}, nil)

		err := (&main.SearchCmd{Query: "invoice"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "invoice.pdf")
		assert.Contains(t, stdout.String(), "/docs/invoice.pdf")
	})

	t.Run("shows a message when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.FilingService{
			SearchFn: func(context.Context, string) ([]*cabinet.File, error) { return nil, nil },
		}, nil)

		require.NoError(t, (&main.SearchCmd{Query: "none"}).Run(deps))
		assert.Contains(t, stdout.String(), "No files found.")
	})
}

func TestRemoveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.FilingService{}, nil)

		err := (&main.RemoveCmd{Checksum: "abc"}).Run(deps)

		assert.Equal(t, cabinet.EINVALID, cabinet.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("removes with --force", func(t *testing.T) {
		t.Parallel()

		var removed string
		deps, stdout, _ := newDeps(&mock.FilingService{
			RemoveFn: func(_ context.Context, checksum string) error {
				removed = checksum
				return nil
			},
		}, nil)

		err := (&main.RemoveCmd{Checksum: "abc", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "abc", removed)
		assert.Contains(t, stdout.String(), "Removed abc")
	})
}

func TestConfigSetCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("parses the value as the stored type", func(t *testing.T) {
		t.Parallel()

		var got cabinet.Value
		deps, stdout, _ := newDeps(nil, &mock.ConfigService{
			GetFn: func(context.Context, string) (cabinet.Value, error) {
				return cabinet.BoolValue(true), nil
			},
			SetFn: func(_ context.Context, _ string, v cabinet.Value) error {
				got = v
				return nil
			},
		})

		err := (&main.ConfigSetCmd{Key: cabinet.KeyIndexingRecursive, Value: "false"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, cabinet.BoolValue(false), got)
		assert.Contains(t, stdout.String(), "indexing.recursive = false")
	})

	t.Run("uses an explicit type", func(t *testing.T) {
		t.Parallel()

		var got cabinet.Value
		deps, _, _ := newDeps(nil, &mock.ConfigService{
			SetFn: func(_ context.Context, _ string, v cabinet.Value) error {
				got = v
				return nil
			},
		})

		err := (&main.ConfigSetCmd{Key: cabinet.KeyIndexExtensions, Value: `[".md"]`, Type: "list"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, cabinet.StringsValue(".md"), got)
	})

	t.Run("rejects values of the wrong type", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil, &mock.ConfigService{
			GetFn: func(context.Context, string) (cabinet.Value, error) {
				return cabinet.IntValue(1), nil
			},
		})

		err := (&main.ConfigSetCmd{Key: cabinet.KeyCheckinMaxSize, Value: "lots"}).Run(deps)

		assert.Equal(t, cabinet.EINVALID, cabinet.ErrorCode(err))
		assert.Contains(t, stderr.String(), "invalid int")
	})
}

func TestConfigGetCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the stored value", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil, &mock.ConfigService{
			GetFn: func(context.Context, string) (cabinet.Value, error) {
				return cabinet.StringsValue(".txt", ".pdf"), nil
			},
		})

		require.NoError(t, (&main.ConfigGetCmd{Key: cabinet.KeyIndexExtensions}).Run(deps))
		assert.Equal(t, "[\".txt\", \".pdf\"]\n", stdout.String())
	})

	t.Run("passes a typed default", func(t *testing.T) {
		t.Parallel()

		var gotDefault cabinet.Value
		deps, stdout, _ := newDeps(nil, &mock.ConfigService{
			GetOrDefaultFn: func(_ context.Context, _ string, def cabinet.Value) (cabinet.Value, error) {
				gotDefault = def
				return def, nil
			},
		})

		require.NoError(t, (&main.ConfigGetCmd{Key: "user.x", Default: "5", Type: "int"}).Run(deps))
		assert.Equal(t, cabinet.IntValue(5), gotDefault)
		assert.Equal(t, "5\n", stdout.String())
	})
}

func TestConfigCreateCmd_Run(t *testing.T) {
	t.Parallel()

	var got cabinet.ConfigEntry
	deps, stdout, _ := newDeps(nil, &mock.ConfigService{
		CreateFn: func(_ context.Context, entry cabinet.ConfigEntry) (cabinet.Value, error) {
			got = entry
			return entry.Value, nil
		},
	})

	err := (&main.ConfigCreateCmd{Key: "user.limit", Value: "3", Type: "int", Default: "1", Description: "limit"}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "user.limit", got.Key)
	assert.Equal(t, cabinet.IntValue(3), got.Value)
	require.NotNil(t, got.Default)
	assert.Equal(t, cabinet.IntValue(1), *got.Default)
	assert.Equal(t, "limit", got.Description)
	assert.Contains(t, stdout.String(), "user.limit = 3")
}

func TestConfigListCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(nil, &mock.ConfigService{
		ListFn: func(context.Context) (map[string]cabinet.ConfigEntry, error) {
			entries := make(map[string]cabinet.ConfigEntry)
			for _, e := range cabinet.DefaultConfig() {
				entries[e.Key] = e
			}
			return entries, nil
		},
	})

	require.NoError(t, (&main.ConfigListCmd{}).Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "cabinet.name")
	assert.Contains(t, output, "Filing Cabinet")
	assert.Less(t, bytes.Index(stdout.Bytes(), []byte("cabinet.name")), bytes.Index(stdout.Bytes(), []byte("storage.encryption")))
}
