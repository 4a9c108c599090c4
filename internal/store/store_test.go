package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDigest = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openStore(t)
	data := []byte(strings.Repeat("deadbeef  some/path.txt\n", 100))

	require.NoError(t, s.Put(testDigest, data))
	assert.True(t, s.Has(testDigest))

	got, err := s.Get(testDigest)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Content-addressed: a second put is a no-op.
	require.NoError(t, s.Put(testDigest, data))
}

func TestGetSurvivesColdCache(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(testDigest, []byte("manifest body\n")))
	require.NoError(t, s.Close())

	// Reopen: the object must decompress from disk.
	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(testDigest)
	require.NoError(t, err)
	assert.Equal(t, []byte("manifest body\n"), got)
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)

	_, err := s.Get(testDigest)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, s.Has(testDigest))
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Put(testDigest, []byte("m\n")))
	require.NoError(t, s.PutRef("main", testDigest))

	require.NoError(t, s.Delete(testDigest))
	assert.False(t, s.Has(testDigest))
	_, err := s.Get(testDigest)
	assert.ErrorIs(t, err, ErrNotFound)

	// The ref survives but no longer resolves to a stored object.
	_, err = s.Resolve("main")
	require.NoError(t, err) // ref lookup alone still succeeds

	// Deleting again reports the object as gone.
	assert.ErrorIs(t, s.Delete(testDigest), ErrNotFound)
}

func TestRefs(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Put(testDigest, []byte("m\n")))

	require.NoError(t, s.PutRef("main", testDigest))
	require.NoError(t, s.PutRef("release", testDigest))

	digest, err := s.GetRef("main")
	require.NoError(t, err)
	assert.Equal(t, testDigest, digest)

	refs, err := s.ListRefs()
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "main", refs[0].Name)
	assert.Equal(t, "release", refs[1].Name)

	_, err = s.GetRef("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefNameValidation(t *testing.T) {
	s := openStore(t)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.Error(t, s.PutRef(name, testDigest), "name %q", name)
	}
}

func TestResolve(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Put(testDigest, []byte("m\n")))
	require.NoError(t, s.PutRef("main", testDigest))

	for _, key := range []string{"main", testDigest} {
		digest, err := s.Resolve(key)
		require.NoError(t, err)
		assert.Equal(t, testDigest, digest)
	}

	_, err := s.Resolve("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
