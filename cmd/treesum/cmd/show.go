package cmd

import (
	"os"

	"github.com/aweris/treesum/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name-or-digest>",
	Short: "Print a stored manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	_, err = os.Stdout.Write(data)
	return err
}
