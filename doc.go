// Package treesum computes a deterministic cryptographic digest of a
// directory tree, suitable as a cache key, change-detection fingerprint,
// or build-reproducibility check.
//
// Two computations over trees with identical (path, content) pairs and
// identical options always produce the identical digest, regardless of
// filesystem iteration order or platform. Determinism comes from sorting
// the collected file list by normalized relative path and from
// unambiguous record framing: every per-file record fed into the root
// BLAKE3 accumulator delimits its variable-length fields, so no two
// distinct trees can produce the same framed byte stream.
//
// Basic usage:
//
//	digest, err := treesum.Hash(ctx, "./src")
//	fmt.Println(digest) // lowercase hex
//
// With ignore rules and metadata folding:
//
//	digest, _ := treesum.Hash(ctx, ".",
//	    treesum.WithIgnorePatterns("build/**", "*.tmp"),
//	    treesum.WithMetadata(),
//	)
//
// A full per-file report:
//
//	rep, _ := treesum.HashReport(ctx, ".")
//	rep.WriteTo(os.Stdout)
//
// Ignore patterns use shell-style globs: `*` matches within a path
// segment, `**` matches across segments, `?` matches one character.
// There is no negation syntax. Unless disabled, patterns are also
// auto-loaded from a `.treesumignore` file at the hashed root.
package treesum
