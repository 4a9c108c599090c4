package treesum

import (
	"context"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
)

// Hash computes the digest of the tree rooted at root. It is a pure
// function of the root path, the options, and the filesystem contents
// at call time; no state is cached across calls.
func Hash(ctx context.Context, root string, opts ...Option) (Digest, error) {
	rep, err := HashReport(ctx, root, opts...)
	if err != nil {
		return Digest{}, err
	}
	return rep.Root, nil
}

// HashReport computes the digest and returns the full per-file report
// in absorption order.
func HashReport(ctx context.Context, root string, opts ...Option) (*Report, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	root = filepath.Clean(root)

	cfg, err := resolveConfig(root, options)
	if err != nil {
		return nil, err
	}

	entries, err := collectFiles(root, cfg)
	if err != nil {
		return nil, err
	}

	if err := hashContents(ctx, entries, cfg.concurrency); err != nil {
		return nil, err
	}

	// Absorption is strictly sequential and follows the sorted order,
	// never worker completion order.
	f := newFramer()
	rep := &Report{Files: make([]FileEntry, len(entries))}
	for i := range entries {
		f.absorb(&entries[i], cfg.includeMetadata)
		rep.Files[i] = FileEntry{Path: entries[i].rel, Sum: entries[i].sum}
	}
	rep.Root = f.finalize()
	return rep, nil
}

// hashContents fills in per-file content digests on a bounded worker
// pool. Each file's content hash is independent, so fan-out is safe;
// the first error cancels the pool and aborts the computation.
func hashContents(ctx context.Context, entries []fileEntry, workers int) error {
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i := range entries {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := hashFile(entries[i].abs)
			if err != nil {
				return err
			}
			entries[i].sum = sum
			return nil
		})
	}
	return p.Wait()
}
