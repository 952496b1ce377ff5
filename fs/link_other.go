//go:build !unix

package fs

// linkCount reports a single link where the platform exposes no link count.
func linkCount(string) (uint64, error) {
	return 1, nil
}
