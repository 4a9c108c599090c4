package treesum

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// fileEntry is one regular file that survived filtering. Entries live
// only for the duration of a single digest computation.
type fileEntry struct {
	rel  string // normalized root-relative path, the sort key
	abs  string // filesystem path used to open the file
	sum  Digest // content digest, filled by the hashing stage
	mode uint32
	sec  int64
	nsec uint32
}

// walker collects candidate files for one computation. A fresh walker
// is created per computation; no walk state is cached across calls.
type walker struct {
	root    string
	cfg     *config
	onStack map[string]struct{} // resolved dirs on the descent path, cycle guard
	entries []fileEntry
}

// collectFiles walks the tree, prunes ignored entries, and returns the
// surviving regular files sorted by normalized relative path. Traversal
// order is whatever the OS reports; the sort supplies determinism.
func collectFiles(root string, cfg *config) ([]fileEntry, error) {
	w := &walker{root: root, cfg: cfg}
	if cfg.followSymlinks {
		w.onStack = make(map[string]struct{})
	}
	if err := w.walkDir(root); err != nil {
		return nil, err
	}
	w.sort()
	return w.entries, nil
}

func (w *walker) walkDir(dir string) error {
	if w.cfg.followSymlinks {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return &TraversalError{Path: dir, Err: err}
		}
		if _, ok := w.onStack[resolved]; ok {
			return &TraversalError{Path: dir, Err: ErrCycle}
		}
		w.onStack[resolved] = struct{}{}
		defer delete(w.onStack, resolved)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return &TraversalError{Path: dir, Err: err}
	}

	for _, d := range dirents {
		abs := filepath.Join(dir, d.Name())
		rel, err := relPath(w.root, abs)
		if err != nil {
			return err
		}
		// Pruning happens before any stat: a matching directory is not
		// descended into at all.
		if w.cfg.matcher.Matches(rel) {
			continue
		}

		mode := d.Type()
		switch {
		case mode&fs.ModeSymlink != 0:
			if !w.cfg.followSymlinks {
				continue
			}
			if err := w.walkLink(abs, rel); err != nil {
				return err
			}
		case mode.IsDir():
			if err := w.walkDir(abs); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := w.addFile(abs, rel, d.Info); err != nil {
				return err
			}
		default:
			// Devices, sockets and pipes contribute nothing.
		}
	}
	return nil
}

// walkLink resolves a symlink: linked regular files are hashed as if
// they were ordinary files at their link path, linked directories are
// descended into.
func (w *walker) walkLink(abs, rel string) error {
	info, err := os.Stat(abs)
	if err != nil {
		return &TraversalError{Path: abs, Err: err}
	}
	switch {
	case info.IsDir():
		return w.walkDir(abs)
	case info.Mode().IsRegular():
		return w.addFile(abs, rel, func() (fs.FileInfo, error) { return info, nil })
	}
	return nil
}

func (w *walker) addFile(abs, rel string, statFn func() (fs.FileInfo, error)) error {
	e := fileEntry{rel: rel, abs: abs}
	if w.cfg.includeMetadata {
		info, err := statFn()
		if err != nil {
			return &TraversalError{Path: abs, Err: err}
		}
		mtime := info.ModTime()
		e.mode = uint32(info.Mode().Perm())
		e.sec = mtime.Unix()
		e.nsec = uint32(mtime.Nanosecond())
	}
	w.entries = append(w.entries, e)
	return nil
}

// sort orders entries byte-wise by relative path. With case-insensitive
// ordering, ASCII letters are lowered for comparison and ties fall back
// to the byte-wise order so same-insensitive-name entries still sort
// deterministically.
func (w *walker) sort() {
	insensitive := w.cfg.caseInsensitiveOrder
	sort.Slice(w.entries, func(i, j int) bool {
		a, b := w.entries[i].rel, w.entries[j].rel
		if insensitive {
			if la, lb := lowerASCII(a), lowerASCII(b); la != lb {
				return la < lb
			}
		}
		return a < b
	})
}
