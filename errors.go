package treesum

import (
	"errors"
	"fmt"

	"github.com/aweris/treesum/internal/ignore"
)

// ErrCycle is the cause carried by a TraversalError when following
// symlinks leads back to a directory already on the descent path.
var ErrCycle = errors.New("treesum: symlink cycle")

// PatternError reports a malformed ignore glob. Re-exported from
// internal/ignore for convenience.
type PatternError = ignore.PatternError

// ConfigError reports invalid configuration detected before traversal
// starts, such as an unreadable ignore file. No filesystem I/O beyond
// reading the named source has happened when it is returned.
type ConfigError struct {
	Source string // offending ignore file or option
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("treesum: config %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TraversalError reports an I/O failure or symlink cycle during the
// walk or while streaming file contents. The computation aborts and no
// digest is returned.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("treesum: traverse %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// PathError reports a path that escaped the hashed root. It guards an
// internal invariant and should never surface under correct traversal.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("treesum: path %s escapes root", e.Path)
}
