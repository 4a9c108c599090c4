package treesum

import (
	"encoding/hex"
	"fmt"
	"io"
)

// DigestSize is the size of a Digest in bytes.
const DigestSize = 32

// Digest is a fixed-size BLAKE3 digest, displayed as lowercase hex.
type Digest [DigestSize]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses the lowercase hex form produced by Digest.String.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != hex.EncodedLen(DigestSize) {
		return d, fmt.Errorf("treesum: invalid digest length %d", len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("treesum: invalid digest: %w", err)
	}
	return d, nil
}

// FileEntry describes one hashed file in a Report.
type FileEntry struct {
	Path string
	Sum  Digest
}

// Report lists every hashed file in absorption order plus the root
// digest.
type Report struct {
	Files []FileEntry
	Root  Digest
}

// WriteTo renders the textual report: one "<digest>  <path>" line per
// file in sorted order, then the root digest on its own line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, f := range r.Files {
		m, err := fmt.Fprintf(w, "%s  %s\n", f.Sum, f.Path)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	m, err := fmt.Fprintf(w, "%s\n", r.Root)
	return n + int64(m), err
}
