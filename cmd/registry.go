package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(sizeCmd)
	root.AddCommand(clipboardServeCmd)
}
