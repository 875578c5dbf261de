package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeerrry/gitlit/object"
)

var lsTreeNameOnly bool

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree <hex>",
	Short: "Print a tree's entry names, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := object.DecodeID(args[0])
		if err != nil {
			return err
		}
		obj, err := currentStore().ReadObject(id)
		if err != nil {
			return err
		}
		tree, ok := obj.(*object.Tree)
		if !ok {
			return fmt.Errorf("cmd: %s is not a tree", id)
		}
		for _, name := range tree.Names() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	lsTreeCmd.Flags().BoolVar(&lsTreeNameOnly, "name-only", false, "print only entry names")
	lsTreeCmd.MarkFlagRequired("name-only")
	RootCmd.AddCommand(lsTreeCmd)
}
