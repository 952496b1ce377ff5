//go:build unix

package fs

import "golang.org/x/sys/unix"

// linkCount returns the number of hard links to path without following a
// final symlink.
func linkCount(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Nlink), nil
}
