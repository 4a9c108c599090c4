package treesum

import "runtime"

// DefaultIgnoreFile is the ignore file auto-loaded from the hashed root
// unless disabled with WithoutDefaultIgnores.
const DefaultIgnoreFile = ".treesumignore"

// Options configure a digest computation.
type Options struct {
	IgnorePatterns       []string
	IgnoreFiles          []string
	IncludeMetadata      bool
	FollowSymlinks       bool
	CaseInsensitiveOrder bool
	NoDefaultIgnores     bool
	Concurrency          int
}

// Option is a functional option for Hash and HashReport.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Concurrency: defaultConcurrency(),
	}
}

// Content hashing is I/O bound, so oversubscribe the CPUs a little.
func defaultConcurrency() int {
	return min(max(runtime.NumCPU()*2, 4), 32)
}

// WithIgnorePatterns appends inline glob patterns, evaluated against
// normalized root-relative paths.
func WithIgnorePatterns(patterns ...string) Option {
	return func(o *Options) { o.IgnorePatterns = append(o.IgnorePatterns, patterns...) }
}

// WithIgnoreFile appends a file of newline-separated glob patterns.
// Lines starting with '#' and blank lines are skipped. Can be repeated;
// files are merged after inline patterns, in the order supplied.
func WithIgnoreFile(path string) Option {
	return func(o *Options) { o.IgnoreFiles = append(o.IgnoreFiles, path) }
}

// WithMetadata folds mode bits and modification time into each file
// record, so a touch changes the digest.
func WithMetadata() Option {
	return func(o *Options) { o.IncludeMetadata = true }
}

// WithFollowSymlinks hashes symlinked regular files at their link path
// and descends into symlinked directories. Cycles are detected and
// reported as a TraversalError wrapping ErrCycle.
func WithFollowSymlinks() Option {
	return func(o *Options) { o.FollowSymlinks = true }
}

// WithCaseInsensitiveOrder sorts entries comparing ASCII letters
// case-insensitively. Only the ordering changes; matching and the
// framed path bytes are untouched.
func WithCaseInsensitiveOrder() Option {
	return func(o *Options) { o.CaseInsensitiveOrder = true }
}

// WithoutDefaultIgnores disables auto-loading DefaultIgnoreFile from
// the hashed root.
func WithoutDefaultIgnores() Option {
	return func(o *Options) { o.NoDefaultIgnores = true }
}

// WithConcurrency bounds the content-hashing worker pool.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}
