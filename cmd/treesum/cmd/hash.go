package cmd

import (
	"fmt"
	"os"

	"github.com/aweris/treesum"
	"github.com/aweris/treesum/internal/manifest"
	"github.com/aweris/treesum/internal/store"
	"github.com/spf13/cobra"
)

// hashFlags are shared between hash and verify, which must support the
// same configuration to compare like with like.
type hashFlags struct {
	ignores         []string
	ignoreFiles     []string
	followSymlinks  bool
	includeMetadata bool
	caseInsensitive bool
	noDefaults      bool
	jobs            int
}

func addHashFlags(cmd *cobra.Command, f *hashFlags) {
	cmd.Flags().StringArrayVar(&f.ignores, "ignore", nil, "glob pattern to ignore (repeatable)")
	cmd.Flags().StringArrayVar(&f.ignoreFiles, "ignore-file", nil, "load patterns from a file (repeatable)")
	cmd.Flags().BoolVar(&f.followSymlinks, "follow-symlinks", false, "follow symlinks while walking")
	cmd.Flags().BoolVar(&f.includeMetadata, "include-metadata", false, "fold mode and mtime into the digest")
	cmd.Flags().BoolVar(&f.caseInsensitive, "case-insensitive", false, "order entries case-insensitively")
	cmd.Flags().BoolVar(&f.noDefaults, "no-default-ignores", false, "do not auto-load "+treesum.DefaultIgnoreFile)
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "content hashing workers (default: CPU based)")
}

func (f *hashFlags) options() []treesum.Option {
	var opts []treesum.Option
	if len(f.ignores) > 0 {
		opts = append(opts, treesum.WithIgnorePatterns(f.ignores...))
	}
	for _, file := range f.ignoreFiles {
		opts = append(opts, treesum.WithIgnoreFile(file))
	}
	if f.followSymlinks {
		opts = append(opts, treesum.WithFollowSymlinks())
	}
	if f.includeMetadata {
		opts = append(opts, treesum.WithMetadata())
	}
	if f.caseInsensitive {
		opts = append(opts, treesum.WithCaseInsensitiveOrder())
	}
	if f.noDefaults {
		opts = append(opts, treesum.WithoutDefaultIgnores())
	}
	if f.jobs > 0 {
		opts = append(opts, treesum.WithConcurrency(f.jobs))
	}
	return opts
}

var (
	hashCmdFlags hashFlags
	hashReport   bool
	hashSave     string
)

var hashCmd = &cobra.Command{
	Use:   "hash [dir]",
	Short: "Compute the digest of a directory tree",
	Long:  "Compute the deterministic digest of a directory tree (default: current directory).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	addHashFlags(hashCmd, &hashCmdFlags)
	hashCmd.Flags().BoolVar(&hashReport, "report", false, "print the full per-file report")
	hashCmd.Flags().StringVar(&hashSave, "save", "", "store the manifest under the given name")
}

func runHash(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	rep, err := treesum.HashReport(cmd.Context(), dir, hashCmdFlags.options()...)
	if err != nil {
		return err
	}

	if hashReport {
		if _, err := rep.WriteTo(os.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Println(rep.Root)
	}

	if hashSave != "" {
		st, err := store.Open(getCacheDir())
		if err != nil {
			return err
		}
		defer st.Close()

		digest := rep.Root.String()
		if err := st.Put(digest, manifest.Encode(rep)); err != nil {
			return err
		}
		if err := st.PutRef(hashSave, digest); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %s -> %s\n", hashSave, digest)
	}

	return nil
}
