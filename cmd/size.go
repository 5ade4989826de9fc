package cmd

import (
	"cb/pkg/dispatch"
	"cb/pkg/errors"

	"github.com/spf13/cobra"
)

var sizeFormat string

var sizeCmd = &cobra.Command{
	Use:   dispatch.SizeCommand,
	Short: "Show how much text the clipboard holds",
	Long: `Print the size of the clipboard text in bytes, KB, MB, GB or TB
(binary multiples of 1024). Any further arguments are ignored.`,
	Example: `  cb size
  cb size --format json`,
	Args: cobra.ArbitraryArgs,
	// Everything after size is ignored, dash-leading words included.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := dispatch.ParseFormat(sizeFormat)
		if err != nil {
			return errors.UsageError(err.Error())
		}

		d := newDispatcher()
		d.SizeFormat = format
		return d.Run(append([]string{dispatch.SizeCommand}, args...), detectStreams())
	},
}

func init() {
	sizeCmd.Flags().StringVar(&sizeFormat, "format", string(dispatch.FormatText), "Output format (text, json, yaml)")
	_ = sizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dispatch.ValidFormats(), cobra.ShellCompDirectiveNoFileComp
	})
}
