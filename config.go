package treesum

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aweris/treesum/internal/ignore"
)

// config is the fully resolved form of Options: every ignore source is
// merged and compiled before traversal begins, and traversal never
// re-reads configuration.
type config struct {
	matcher              *ignore.Matcher
	includeMetadata      bool
	followSymlinks       bool
	caseInsensitiveOrder bool
	concurrency          int
}

// resolveConfig merges ignore sources in defined order (inline
// patterns, then supplied ignore files, then the auto-loaded default
// ignore file at the root) and compiles the matcher. All failures here
// happen before any traversal I/O.
func resolveConfig(root string, o *Options) (*config, error) {
	patterns := make([]string, 0, len(o.IgnorePatterns))
	for _, p := range o.IgnorePatterns {
		patterns = append(patterns, strings.ReplaceAll(p, `\`, "/"))
	}

	for _, file := range o.IgnoreFiles {
		pats, err := loadPatternFile(file)
		if err != nil {
			return nil, &ConfigError{Source: file, Err: err}
		}
		patterns = append(patterns, pats...)
	}

	if !o.NoDefaultIgnores {
		file := filepath.Join(root, DefaultIgnoreFile)
		pats, err := loadPatternFile(file)
		switch {
		case err == nil:
			patterns = append(patterns, pats...)
		case !os.IsNotExist(err):
			return nil, &ConfigError{Source: file, Err: err}
		}
	}

	matcher, err := ignore.Compile(patterns)
	if err != nil {
		return nil, err
	}

	return &config{
		matcher:              matcher,
		includeMetadata:      o.IncludeMetadata,
		followSymlinks:       o.FollowSymlinks,
		caseInsensitiveOrder: o.CaseInsensitiveOrder,
		concurrency:          o.Concurrency,
	}, nil
}

// loadPatternFile reads newline-separated glob patterns. Blank lines
// and '#' comments are skipped. Negated ('!') lines are skipped rather
// than rejected so shared ignore files with negations stay loadable;
// the patterns that do load can only narrow visibility.
func loadPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pats []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		pats = append(pats, strings.ReplaceAll(line, `\`, "/"))
	}
	return pats, nil
}
