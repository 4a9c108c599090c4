package treesum

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

const (
	// domainTag is absorbed once before any record. It separates this
	// digest format (and version) from unrelated uses of BLAKE3; a
	// future format bump changes the tag.
	domainTag = "treesum-v1\x00"

	// chunkSize is the streaming buffer for content hashing. Files are
	// never loaded into memory whole.
	chunkSize = 64 * 1024
)

// framer owns the root hash accumulator. Records must be absorbed in
// sorted path order by a single goroutine.
type framer struct {
	root *blake3.Hasher
}

func newFramer() *framer {
	f := &framer{root: blake3.New()}
	f.root.Write([]byte(domainTag))
	return f
}

// absorb feeds one file record into the root accumulator:
//
//	'F' 0x00 <path> 0x00 <content digest>
//
// and, with metadata enabled:
//
//	0x00 'M' 0x00 <mode u32le> <seconds u64le> <nanos u32le>
//
// The path is the only variable-length field and is terminated before
// the fixed-length digest, so no two distinct (path, content) sequences
// frame to the same byte stream.
func (f *framer) absorb(e *fileEntry, withMeta bool) {
	f.root.Write([]byte{'F', 0})
	f.root.Write([]byte(e.rel))
	f.root.Write([]byte{0})
	f.root.Write(e.sum[:])

	if withMeta {
		var buf [19]byte
		buf[1] = 'M'
		binary.LittleEndian.PutUint32(buf[3:], e.mode)
		binary.LittleEndian.PutUint64(buf[7:], uint64(e.sec))
		binary.LittleEndian.PutUint32(buf[15:], e.nsec)
		f.root.Write(buf[:])
	}
}

func (f *framer) finalize() Digest {
	var d Digest
	copy(d[:], f.root.Sum(nil))
	return d
}

// hashFile streams the file through a fresh content hasher in
// chunkSize pieces. The handle is released on every exit path.
func hashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, &TraversalError{Path: path, Err: err}
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return Digest{}, &TraversalError{Path: path, Err: err}
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}
