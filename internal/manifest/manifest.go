// Package manifest encodes treesum reports as stored artifacts.
//
// The format is the textual report form: one "<digest>  <path>" line
// per hashed file in sorted order, then the root digest on the final
// line. Round-tripping through Encode and Decode is lossless for the
// path and digest fields.
package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aweris/treesum"
)

const separator = "  "

// Encode renders a report in the stored manifest form.
func Encode(r *treesum.Report) []byte {
	var buf bytes.Buffer
	r.WriteTo(&buf)
	return buf.Bytes()
}

// Decode parses manifest data back into a report.
func Decode(data []byte) (*treesum.Report, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("manifest: empty input")
	}

	rep := &treesum.Report{}
	for i, line := range lines[:len(lines)-1] {
		sum, path, ok := strings.Cut(line, separator)
		if !ok || path == "" {
			return nil, fmt.Errorf("manifest: line %d: malformed file entry", i+1)
		}
		d, err := treesum.ParseDigest(sum)
		if err != nil {
			return nil, fmt.Errorf("manifest: line %d: %w", i+1, err)
		}
		rep.Files = append(rep.Files, treesum.FileEntry{Path: path, Sum: d})
	}

	root, err := treesum.ParseDigest(lines[len(lines)-1])
	if err != nil {
		return nil, fmt.Errorf("manifest: root digest: %w", err)
	}
	rep.Root = root
	return rep, nil
}
