package cmd

import (
	"fmt"
	"os"

	"github.com/aweris/treesum/internal/remote"
	"github.com/aweris/treesum/internal/store"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <name-or-digest> <image-ref>",
	Short: "Publish a stored manifest to an OCI registry",
	Long:  "Push a stored manifest as a single-layer OCI image (e.g., ghcr.io/org/fingerprints:main).",
	Args:  cobra.ExactArgs(2),
	RunE:  runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	st, err := store.Open(getCacheDir())
	if err != nil {
		return err
	}
	defer st.Close()

	digest, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	data, err := st.Get(digest)
	if err != nil {
		return err
	}

	client, err := remote.New(args[1], registryAuth())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Publishing %s to %s...\n", digest, client)
	if err := client.Publish(cmd.Context(), digest, data); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Done. Root: %s\n", digest)
	return nil
}
