package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jeerrry/gitlit/transport"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <url> <dir>",
	Short: "Clone a remote repository into a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &transport.HTTPFetcher{}
		return transport.Clone(f, args[0], args[1])
	},
}

func init() {
	RootCmd.AddCommand(cloneCmd)
}
