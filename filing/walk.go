package filing

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// visitFunc handles one regular file found by a walk. rel is the path
// relative to the walk root.
type visitFunc func(ctx context.Context, path, rel string) error

// walker descends a directory tree according to a policy. Paths are reported
// through the links that reach them, never through resolved targets.
type walker struct {
	root    string
	policy  *policy
	visit   visitFunc
	skip    func(path string)
	visited map[string]struct{}
}

func (w *walker) walk(ctx context.Context) error {
	resolved, err := filepath.EvalSymlinks(w.root)
	if err != nil {
		return pathError(w.root, err)
	}
	w.visited = map[string]struct{}{resolved: {}}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return pathError(w.root, err)
	}
	return w.walkEntries(ctx, w.root, entries)
}

func (w *walker) walkDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.skip(dir)
		return nil
	}
	return w.walkEntries(ctx, dir, entries)
}

func (w *walker) walkEntries(ctx context.Context, dir string, entries []fs.DirEntry) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			rel = entry.Name()
		}

		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			if !w.policy.follow {
				w.skip(path)
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				w.skip(path)
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if !w.policy.recursive || w.policy.ignore.MatchDir(rel) {
				continue
			}
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				w.skip(path)
				continue
			}
			if _, ok := w.visited[resolved]; ok {
				continue
			}
			w.visited[resolved] = struct{}{}
			if err := w.walkDir(ctx, path); err != nil {
				return err
			}
		case mode.IsRegular():
			if w.policy.ignore.Match(rel) {
				w.skip(path)
				continue
			}
			if err := w.visit(ctx, path, rel); err != nil {
				return err
			}
		}
	}
	return nil
}
