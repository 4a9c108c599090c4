package cmd

import (
	"fmt"

	"github.com/aweris/treesum/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored manifests",
	Long:  "List all named manifests in the local store.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.Open(getCacheDir())
	if err != nil {
		return err
	}
	defer st.Close()

	refs, err := st.ListRefs()
	if err != nil {
		return err
	}

	if len(refs) == 0 {
		fmt.Println("(no entries)")
		return nil
	}

	for _, ref := range refs {
		fmt.Printf("%s\t%s\n", ref.Name, ref.Digest)
	}
	return nil
}
