package treesum

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestHashFileMatchesDirectHash(t *testing.T) {
	content := strings.Repeat("0123456789abcdef", 3000) // spans several chunks
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := hashFile(path)
	require.NoError(t, err)

	h := blake3.New()
	h.Write([]byte(content))
	var want Digest
	copy(want[:], h.Sum(nil))

	assert.Equal(t, want, got)
}

func TestHashFileMissing(t *testing.T) {
	_, err := hashFile(filepath.Join(t.TempDir(), "nope"))
	var travErr *TraversalError
	require.ErrorAs(t, err, &travErr)
}

func TestFramerDomainSeparation(t *testing.T) {
	// An empty tree digest is the digest of the domain tag alone, not
	// of the empty string.
	empty := newFramer().finalize()

	h := blake3.New()
	var plain Digest
	copy(plain[:], h.Sum(nil))

	assert.NotEqual(t, plain, empty)
}

func TestFramerMetadataChangesRecord(t *testing.T) {
	entry := fileEntry{rel: "a.txt", sec: 1700000000, nsec: 42, mode: 0644}

	plain := newFramer()
	plain.absorb(&entry, false)

	withMeta := newFramer()
	withMeta.absorb(&entry, true)

	assert.NotEqual(t, plain.finalize(), withMeta.finalize())

	// Nanosecond-only changes are visible too.
	touched := entry
	touched.nsec = 43
	second := newFramer()
	second.absorb(&touched, true)
	assert.NotEqual(t, withMeta.finalize(), second.finalize())
}

func TestFramerOrderMatters(t *testing.T) {
	a := fileEntry{rel: "a"}
	b := fileEntry{rel: "b"}

	forward := newFramer()
	forward.absorb(&a, false)
	forward.absorb(&b, false)

	reverse := newFramer()
	reverse.absorb(&b, false)
	reverse.absorb(&a, false)

	assert.NotEqual(t, forward.finalize(), reverse.finalize())
}
