package treesum

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymlinksSkippedByDefault(t *testing.T) {
	target := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0644))

	// A tree containing only a symlink hashes like an empty tree.
	root := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.txt")))

	assert.Equal(t, mustHash(t, root), mustHash(t, t.TempDir()))
}

func TestFollowSymlinksHashesLinkPath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0644))

	linked := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(linked, "file.txt")))

	// The linked file hashes as if it were a plain file at the link path.
	plain := writeTree(t, map[string]string{"file.txt": "content"})

	assert.Equal(t,
		mustHash(t, linked, WithFollowSymlinks()),
		mustHash(t, plain))
}

func TestFollowSymlinksDescendsDirectories(t *testing.T) {
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "inner.txt"), []byte("deep"), 0644))

	root := t.TempDir()
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "sub")))

	plain := writeTree(t, map[string]string{"sub/inner.txt": "deep"})

	assert.Equal(t,
		mustHash(t, root, WithFollowSymlinks()),
		mustHash(t, plain))
}

func TestSymlinkCycleDetected(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "a", "b", "loop")))

	_, err := Hash(context.Background(), root, WithFollowSymlinks())
	var travErr *TraversalError
	require.ErrorAs(t, err, &travErr)
	assert.True(t, errors.Is(err, ErrCycle))
}

func TestSymlinkSiblingsAreNotCycles(t *testing.T) {
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "f.txt"), []byte("x"), 0644))

	// Two links to the same directory: duplicates, not a cycle.
	root := t.TempDir()
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "one")))
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "two")))

	plain := writeTree(t, map[string]string{
		"one/f.txt": "x",
		"two/f.txt": "x",
	})

	assert.Equal(t,
		mustHash(t, root, WithFollowSymlinks()),
		mustHash(t, plain))
}

func TestBrokenSymlinkIgnoredUnlessFollowed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "nope"), filepath.Join(root, "dangling")))

	// Skipped silently by default.
	assert.Equal(t, mustHash(t, root), mustHash(t, t.TempDir()))

	// Following a broken link is an I/O failure.
	_, err := Hash(context.Background(), root, WithFollowSymlinks())
	var travErr *TraversalError
	require.ErrorAs(t, err, &travErr)
	assert.False(t, errors.Is(err, ErrCycle))
}

func TestIgnoredEntriesNeverStatted(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.txt":       "x",
		"skipme/sub/a.b": "y",
	})

	// Replace the ignored directory with a dangling symlink: if the
	// walker tried to descend it would fail, pruning must not.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "skipme")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "skipme")))

	d, err := Hash(context.Background(), root, WithFollowSymlinks(), WithIgnorePatterns("skipme"))
	require.NoError(t, err)
	assert.Equal(t, mustHash(t, writeTree(t, map[string]string{"keep.txt": "x"})), d)
}

func TestIgnorePatternsMatchFullRelativePath(t *testing.T) {
	root := writeTree(t, map[string]string{
		"logs/app.log":     "a",
		"sub/logs/app.log": "b",
		"keep.txt":         "c",
	})

	// Root-relative: "logs/*" hides only the top-level logs directory.
	rep, err := HashReport(context.Background(), root, WithIgnorePatterns("logs/*"))
	require.NoError(t, err)

	var paths []string
	for _, f := range rep.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"keep.txt", "sub/logs/app.log"}, paths)

	// "**/*.log" hides both.
	rep, err = HashReport(context.Background(), root, WithIgnorePatterns("**/*.log"))
	require.NoError(t, err)
	require.Len(t, rep.Files, 1)
	assert.Equal(t, "keep.txt", rep.Files[0].Path)
}
