package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var writeTreeCmd = &cobra.Command{
	Use:   "write-tree",
	Short: "Build a tree from the current directory recursively and print its digest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		id, err := currentStore().TreeFromDir(dir)
		if err != nil {
			return err
		}
		fmt.Println(id.String())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(writeTreeCmd)
}
