package mock

import (
	"context"

	"github.com/fwojciec/cabinet"
)

var _ cabinet.CheckoutWriter = (*CheckoutWriter)(nil)

// CheckoutWriter is a mock implementation of cabinet.CheckoutWriter.
type CheckoutWriter struct {
	WriteFileFn func(ctx context.Context, dir string, name string, content []byte) (string, error)
}

func (w *CheckoutWriter) WriteFile(ctx context.Context, dir string, name string, content []byte) (string, error) {
	return w.WriteFileFn(ctx, dir, name, content)
}
