package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeerrry/gitlit/object"
	"github.com/jeerrry/gitlit/store"
)

var (
	commitTreeParent  string
	commitTreeMessage string
)

var commitTreeCmd = &cobra.Command{
	Use:   "commit-tree <tree>",
	Short: "Create a commit pointing at a tree and print its digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		treeID, err := object.DecodeID(args[0])
		if err != nil {
			return err
		}
		parentID := object.ZeroID
		if commitTreeParent != "" {
			parentID, err = object.DecodeID(commitTreeParent)
			if err != nil {
				return err
			}
		}
		id, err := currentStore().CommitTree(treeID, parentID, commitTreeMessage, store.DefaultIdent)
		if err != nil {
			return err
		}
		fmt.Println(id.String())
		return nil
	},
}

func init() {
	commitTreeCmd.Flags().StringVarP(&commitTreeParent, "parent", "p", "", "the commit's parent")
	commitTreeCmd.Flags().StringVarP(&commitTreeMessage, "message", "m", "", "the commit message")
	commitTreeCmd.MarkFlagRequired("message")
	RootCmd.AddCommand(commitTreeCmd)
}
