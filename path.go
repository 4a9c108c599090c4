package treesum

import (
	"path/filepath"
	"strings"
)

// relPath converts a filesystem path under root into its canonical
// relative form: forward slashes on every platform, no leading or
// trailing slash, no "." or ".." segments. The root itself maps to "".
// Paths that are not descendants of root fail with a PathError; the
// walker never produces such paths, this is a defensive guard.
func relPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", &PathError{Path: path}
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", &PathError{Path: path}
	}
	return rel, nil
}

// lowerASCII lowercases ASCII letters only, leaving multibyte runes
// untouched. Used for the case-insensitive sort comparator.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for ; i < len(b); i++ {
				if c := b[i]; 'A' <= c && c <= 'Z' {
					b[i] = c + ('a' - 'A')
				}
			}
			return string(b)
		}
	}
	return s
}
