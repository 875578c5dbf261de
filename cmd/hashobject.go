package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashObjectWrite bool

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <path>",
	Short: "Create a blob from a file and print its digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := currentStore().BlobFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(id.String())
		return nil
	},
}

func init() {
	hashObjectCmd.Flags().BoolVarP(&hashObjectWrite, "write", "w", false, "write the object into the store")
	hashObjectCmd.MarkFlagRequired("write")
	RootCmd.AddCommand(hashObjectCmd)
}
