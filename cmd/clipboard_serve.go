package cmd

import (
	"os"
	"time"

	"cb/pkg/clipboard"

	"github.com/spf13/cobra"
)

var serveGrace time.Duration

var clipboardServeCmd = &cobra.Command{
	Use:    clipboard.ServeCommand,
	Hidden: true,
	Short:  "Internal: hold clipboard ownership for a write (do not call directly)",
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clipboard.Serve(os.Stdin, serveGrace)
	},
}

func init() {
	clipboardServeCmd.Flags().DurationVar(&serveGrace, "grace", clipboard.DefaultGrace, "How long to stay alive after writing through the native backend")
}
