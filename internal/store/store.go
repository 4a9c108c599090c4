// Package store implements the local manifest store.
//
// Manifests are content-addressed by the root digest of the tree they
// describe and stored zstd-compressed; human-readable names map to
// digests through plain-text refs.
//
// Storage layout:
//
//	basePath/
//	  objects/
//	    ab/cdef123...  (zstd-compressed manifests, keyed by root digest)
//	  refs/
//	    <name>         (plain text: lowercase hex root digest)
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aweris/treesum/internal/compression"
)

// ErrNotFound reports a missing object or ref.
var ErrNotFound = errors.New("store: not found")

// Ref maps a name to a stored manifest digest.
type Ref struct {
	Name   string
	Digest string
}

// Store is a filesystem-backed manifest store with an in-memory cache
// in front of the object directory.
type Store struct {
	basePath string
	cache    *memCache
	codec    *compression.Codec
}

// Open creates or opens a store rooted at basePath.
func Open(basePath string) (*Store, error) {
	for _, dir := range []string{
		filepath.Join(basePath, "objects"),
		filepath.Join(basePath, "refs"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	codec, err := compression.New(compression.Default)
	if err != nil {
		return nil, fmt.Errorf("create codec: %w", err)
	}

	return &Store{
		basePath: basePath,
		cache:    newMemCache(64),
		codec:    codec,
	}, nil
}

// Put stores a manifest under its root digest. Existing objects are
// left untouched; content addressing makes rewrites pointless.
func (s *Store) Put(digest string, data []byte) error {
	path := s.objectPath(digest)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(path, s.codec.Compress(data), 0644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}

	s.cache.add(digest, data)
	return nil
}

// Get retrieves a manifest by root digest.
func (s *Store) Get(digest string) ([]byte, error) {
	if data, ok := s.cache.get(digest); ok {
		return data, nil
	}

	compressed, err := os.ReadFile(s.objectPath(digest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s: %w", digest, ErrNotFound)
		}
		return nil, fmt.Errorf("read object: %w", err)
	}

	data, err := s.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress object %s: %w", digest, err)
	}

	s.cache.add(digest, data)
	return data, nil
}

// Has checks whether a manifest exists.
func (s *Store) Has(digest string) bool {
	if s.cache.has(digest) {
		return true
	}
	_, err := os.Stat(s.objectPath(digest))
	return err == nil
}

// Delete removes a stored manifest. Refs pointing at it are left in
// place; resolving them fails until the object is stored again.
func (s *Store) Delete(digest string) error {
	s.cache.remove(digest)
	if err := os.Remove(s.objectPath(digest)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("object %s: %w", digest, ErrNotFound)
		}
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// PutRef points name at a stored digest.
func (s *Store) PutRef(name, digest string) error {
	if err := validRefName(name); err != nil {
		return err
	}
	return os.WriteFile(s.refPath(name), []byte(digest+"\n"), 0644)
}

// GetRef resolves a name to a digest.
func (s *Store) GetRef(name string) (string, error) {
	if err := validRefName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.refPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("ref %s: %w", name, ErrNotFound)
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ListRefs returns all refs sorted by name.
func (s *Store) ListRefs() ([]Ref, error) {
	dirents, err := os.ReadDir(filepath.Join(s.basePath, "refs"))
	if err != nil {
		return nil, err
	}

	refs := make([]Ref, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		digest, err := s.GetRef(d.Name())
		if err != nil {
			return nil, err
		}
		refs = append(refs, Ref{Name: d.Name(), Digest: digest})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Resolve maps a ref name or a literal digest to a stored digest.
func (s *Store) Resolve(nameOrDigest string) (string, error) {
	if digest, err := s.GetRef(nameOrDigest); err == nil {
		return digest, nil
	}
	if s.Has(nameOrDigest) {
		return nameOrDigest, nil
	}
	return "", fmt.Errorf("%s: %w", nameOrDigest, ErrNotFound)
}

func (s *Store) Close() error {
	return s.codec.Close()
}

// objectPath shards objects git-style: objects/ab/cdef123...
func (s *Store) objectPath(digest string) string {
	if len(digest) < 2 {
		return filepath.Join(s.basePath, "objects", digest)
	}
	return filepath.Join(s.basePath, "objects", digest[:2], digest[2:])
}

func (s *Store) refPath(name string) string {
	return filepath.Join(s.basePath, "refs", name)
}

func validRefName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("store: invalid ref name %q", name)
	}
	return nil
}
