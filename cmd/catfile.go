package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jeerrry/gitlit/object"
)

var catFilePrint bool

var catFileCmd = &cobra.Command{
	Use:   "cat-file <hex>",
	Short: "Print the body of an object to standard output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := object.DecodeID(args[0])
		if err != nil {
			return err
		}
		_, body, err := currentStore().Read(id)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(body)
		return err
	},
}

func init() {
	catFileCmd.Flags().BoolVarP(&catFilePrint, "pretty-print", "p", false, "pretty-print the object's contents")
	catFileCmd.MarkFlagRequired("pretty-print")
	RootCmd.AddCommand(catFileCmd)
}
