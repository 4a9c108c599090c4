package cmd

import (
	"fmt"
	"os"

	"github.com/aweris/treesum"
	"github.com/aweris/treesum/internal/store"
	"github.com/spf13/cobra"
)

var verifyCmdFlags hashFlags

var verifyCmd = &cobra.Command{
	Use:   "verify <name-or-digest> [dir]",
	Short: "Recompute a tree digest and compare",
	Long: "Recompute the digest of a directory tree (default: current directory) and " +
		"compare it against a stored manifest name or a literal digest.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	addHashFlags(verifyCmd, &verifyCmdFlags)
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}

	want, err := resolveDigest(args[0])
	if err != nil {
		return err
	}

	got, err := treesum.Hash(cmd.Context(), dir, verifyCmdFlags.options()...)
	if err != nil {
		return err
	}

	if got.String() != want {
		return fmt.Errorf("digest mismatch: want %s, got %s", want, got)
	}

	fmt.Fprintf(os.Stderr, "OK %s\n", got)
	return nil
}

// resolveDigest accepts a stored ref name, a stored digest, or a bare
// digest that was never saved locally.
func resolveDigest(nameOrDigest string) (string, error) {
	st, err := store.Open(getCacheDir())
	if err != nil {
		return "", err
	}
	defer st.Close()

	if digest, err := st.Resolve(nameOrDigest); err == nil {
		return digest, nil
	}
	if _, err := treesum.ParseDigest(nameOrDigest); err == nil {
		return nameOrDigest, nil
	}
	return "", fmt.Errorf("unknown manifest or digest %q", nameOrDigest)
}
