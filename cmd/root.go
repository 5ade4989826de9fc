package cmd

import (
	"fmt"
	"os"
	"strings"

	"cb/pkg/clipboard"
	"cb/pkg/dispatch"
	"cb/pkg/errors"
	"cb/pkg/logger"
	"cb/pkg/terminal"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var logLevel string
var osc52Flag bool

// Swapped out in tests.
var (
	detectStreams = terminal.Detect
	newDispatcher = defaultDispatcher
)

var rootCmd = &cobra.Command{
	Use:   "cb [text]",
	Short: "Bridge the terminal and the system clipboard",
	Long: `cb copies between standard streams and the system clipboard.

With nothing piped in, cb prints the clipboard. With stdin redirected, cb
copies it to the clipboard. A single argument is copied as literal text.
Piping both stdin and stdout, or combining text with a redirect, is an error.`,
	Example: `  # Print the clipboard
  cb

  # Save the clipboard to a file
  cb > notes.txt

  # Copy a file to the clipboard
  cb < notes.txt

  # Copy literal text; a lone dash-leading word is text unless it is a flag
  cb "hello world"
  cb "-5 degrees"
  cb -- --osc52

  # Show how much text the clipboard holds
  cb size`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetLevel(logLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDispatcher().Run(args, detectStreams())
	},
}

func defaultDispatcher() *dispatch.Dispatcher {
	d := dispatch.New()
	if osc52Flag {
		d.Commit = clipboard.OSC52(os.Stderr)
	}
	return d
}

func versionString() string {
	ver := Version
	if ver == "" {
		ver = "dev"
	}
	bt := BuildTime
	if bt == "" {
		bt = unknownValue
	}
	gc := GitCommit
	if gc == "" {
		gc = unknownValue
	}
	return fmt.Sprintf("%s\nBuilt: %s\nGit commit: %s", ver, bt, gc)
}

func Execute() {
	rootCmd.Version = versionString()
	if err := run(os.Args[1:]); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

func run(args []string) error {
	rootCmd.SetArgs(literalArgs(rootCmd, args))
	return rootCmd.Execute()
}

// literalArgs marks a lone dash-leading argument as positional text unless
// it names one of root's flags, so `cb "-5 degrees"` copies the text.
func literalArgs(root *cobra.Command, args []string) []string {
	if args == nil {
		// A nil slice would make cobra fall back to os.Args.
		args = []string{}
	}
	if len(args) != 1 {
		return args
	}
	arg := args[0]
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" || isRootFlag(root, arg) {
		return args
	}
	return []string{"--", arg}
}

func isRootFlag(root *cobra.Command, arg string) bool {
	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()

	if name, ok := strings.CutPrefix(arg, "--"); ok {
		name, _, _ = strings.Cut(name, "=")
		return root.Flags().Lookup(name) != nil || root.PersistentFlags().Lookup(name) != nil
	}
	short := strings.TrimPrefix(arg, "-")
	if len(short) != 1 {
		return false
	}
	return root.Flags().ShorthandLookup(short) != nil || root.PersistentFlags().ShorthandLookup(short) != nil
}

// helpStub replaces cobra's help command. Its name is just another word to
// copy.
var helpStub = &cobra.Command{
	Use:    "no-help",
	Hidden: true,
	Args:   cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDispatcher().Run(append([]string{cmd.Name()}, args...), detectStreams())
	},
}

func init() {
	RegisterCommands(rootCmd)

	// cb help and cb completion copy those words instead of running commands.
	rootCmd.SetHelpCommand(helpStub)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.DefaultLevel, "Log level for diagnostics on stderr (trace, debug, info, warn, error, disabled)")
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return logger.Levels(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.PersistentFlags().BoolVar(&osc52Flag, "osc52", false, "Copy through the terminal with an OSC 52 escape sequence instead of the system clipboard")
}
