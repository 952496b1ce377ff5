package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ cabinet.CheckoutWriter = &mock.CheckoutWriter{}
}

func TestCheckoutWriter_WriteFile(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFileFn", func(t *testing.T) {
		t.Parallel()

		var gotDir, gotName string
		var gotContent []byte
		w := &mock.CheckoutWriter{
			WriteFileFn: func(_ context.Context, dir, name string, content []byte) (string, error) {
				gotDir, gotName, gotContent = dir, name, content
				return dir + "/" + name, nil
			},
		}

		path, err := w.WriteFile(context.Background(), "/out", "doc.txt", []byte("hello"))

		require.NoError(t, err)
		assert.Equal(t, "/out/doc.txt", path)
		assert.Equal(t, "/out", gotDir)
		assert.Equal(t, "doc.txt", gotName)
		assert.Equal(t, []byte("hello"), gotContent)
	})
}
