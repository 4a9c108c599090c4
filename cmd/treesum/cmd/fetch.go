package cmd

import (
	"fmt"
	"os"

	"github.com/aweris/treesum/internal/manifest"
	"github.com/aweris/treesum/internal/remote"
	"github.com/aweris/treesum/internal/store"
	"github.com/spf13/cobra"
)

var fetchSave string

var fetchCmd = &cobra.Command{
	Use:   "fetch <image-ref>",
	Short: "Fetch a published manifest from an OCI registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchSave, "save", "", "store the fetched manifest under the given name")
}

func runFetch(cmd *cobra.Command, args []string) error {
	client, err := remote.New(args[0], registryAuth())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Fetching %s...\n", client)
	digest, data, err := client.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	// Make sure the payload actually is a manifest whose root matches
	// the label before storing anything.
	rep, err := manifest.Decode(data)
	if err != nil {
		return err
	}
	if rep.Root.String() != digest {
		return fmt.Errorf("manifest root %s does not match label %s", rep.Root, digest)
	}

	st, err := store.Open(getCacheDir())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(digest, data); err != nil {
		return err
	}
	if fetchSave != "" {
		if err := st.PutRef(fetchSave, digest); err != nil {
			return err
		}
	}

	fmt.Println(digest)
	return nil
}
