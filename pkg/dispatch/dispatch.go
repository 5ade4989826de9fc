// Package dispatch decides what a cb invocation does and carries it out
// against the clipboard and the standard streams.
package dispatch

import (
	"fmt"
	"io"
	"os"

	"cb/pkg/clipboard"
	"cb/pkg/errors"
	"cb/pkg/logger"
	"cb/pkg/terminal"
	"cb/pkg/utils"
)

// SizeCommand is the literal first argument that selects the size report.
const SizeCommand = "size"

type InvocationKind int

const (
	PlainInvocation InvocationKind = iota
	ShowSize
	SetFromArgument
	TooManyArguments
)

// Invocation is the classified argument list.
type Invocation struct {
	Kind InvocationKind
	Text string
	Args int
}

// Classify inspects the raw arguments (program name excluded).
func Classify(args []string) Invocation {
	switch {
	case len(args) > 0 && args[0] == SizeCommand:
		return Invocation{Kind: ShowSize}
	case len(args) > 1:
		return Invocation{Kind: TooManyArguments, Args: len(args)}
	case len(args) == 1:
		return Invocation{Kind: SetFromArgument, Text: args[0]}
	default:
		return Invocation{Kind: PlainInvocation}
	}
}

type Action int

const (
	ActionShowSize Action = iota
	ActionWriteArgument
	ActionWriteStdin
	ActionReadToStdout
)

func (a Action) String() string {
	switch a {
	case ActionShowSize:
		return "show_size"
	case ActionWriteArgument:
		return "write_argument"
	case ActionWriteStdin:
		return "write_stdin"
	case ActionReadToStdout:
		return "read_to_stdout"
	default:
		return "unknown"
	}
}

// Decide maps an invocation and the stream mode to exactly one action, or a
// usage error. Rules are checked in order and the first match wins.
func Decide(inv Invocation, mode terminal.StreamMode) (Action, error) {
	if inv.Kind == ShowSize {
		return ActionShowSize, nil
	}
	if inv.Kind == TooManyArguments {
		return 0, errors.TooManyArgumentsError()
	}
	if mode.StdinRedirected && mode.StdoutRedirected {
		return 0, errors.BothPipedError()
	}
	if inv.Kind == SetFromArgument {
		if mode.StdinRedirected || mode.StdoutRedirected {
			return 0, errors.TextWithRedirectionError()
		}
		return ActionWriteArgument, nil
	}
	if mode.StdinRedirected {
		return ActionWriteStdin, nil
	}
	return ActionReadToStdout, nil
}

// Dispatcher performs the decided action. Its collaborators are fields so
// tests can swap in fakes.
type Dispatcher struct {
	Stdin  io.Reader
	Stdout io.Writer

	// Open returns the clipboard used for reads.
	Open func() (clipboard.Accessor, error)
	// Commit writes text to the clipboard, possibly deferring to a
	// detached writer.
	Commit func(text string) error

	SizeFormat OutputFormat
}

func New() *Dispatcher {
	return &Dispatcher{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Open:       clipboard.Native,
		Commit:     clipboard.Commit,
		SizeFormat: FormatText,
	}
}

func (d *Dispatcher) Run(args []string, mode terminal.StreamMode) error {
	inv := Classify(args)
	action, err := Decide(inv, mode)
	if err != nil {
		logger.Debug().
			Int("args", len(args)).
			Bool("stdin_redirected", mode.StdinRedirected).
			Bool("stdout_redirected", mode.StdoutRedirected).
			Msg("invocation rejected")
		return err
	}

	logger.Debug().
		Str("action", action.String()).
		Bool("stdin_redirected", mode.StdinRedirected).
		Bool("stdout_redirected", mode.StdoutRedirected).
		Msg("dispatching")

	switch action {
	case ActionShowSize:
		return d.showSize()
	case ActionWriteArgument:
		return d.writeArgument(inv.Text)
	case ActionWriteStdin:
		return d.writeStdin()
	default:
		return d.readToStdout()
	}
}

func (d *Dispatcher) readText() (string, error) {
	acc, err := d.Open()
	if err != nil {
		return "", errors.Wrap(errors.KindClipboardInit, err)
	}
	text, err := acc.ReadAll()
	if err != nil {
		return "", errors.Wrap(errors.KindClipboardRead, err)
	}
	if !utils.IsText([]byte(text)) {
		return "", errors.ClipboardReadError(fmt.Errorf("clipboard content is not valid UTF-8 text"))
	}
	logger.Debug().Int("bytes", len(text)).Msg("read clipboard")
	return text, nil
}

func (d *Dispatcher) commit(text string) error {
	if err := d.Commit(text); err != nil {
		return errors.Wrap(errors.KindClipboardWrite, err)
	}
	logger.Debug().Int("bytes", len(text)).Msg("committed clipboard write")
	return nil
}

func (d *Dispatcher) writeArgument(text string) error {
	if !utils.IsText([]byte(text)) {
		return errors.UsageError(errors.ErrMsgInvalidArgText)
	}
	return d.commit(text)
}

func (d *Dispatcher) showSize() error {
	text, err := d.readText()
	if err != nil {
		return err
	}
	if err := NewOutputWriter(d.Stdout, d.SizeFormat).WriteSize(uint64(len(text))); err != nil {
		return errors.StdoutWriteError(err)
	}
	return nil
}

func (d *Dispatcher) writeStdin() error {
	data, err := io.ReadAll(d.Stdin)
	if err != nil {
		return errors.StdinReadError(err)
	}
	if !utils.IsText(data) {
		return errors.StdinReadError(fmt.Errorf(errors.ErrMsgInvalidUTF8Text))
	}
	logger.Debug().Int("bytes", len(data)).Msg("read stdin")
	return d.commit(string(data))
}

func (d *Dispatcher) readToStdout() error {
	text, err := d.readText()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(d.Stdout, text); err != nil {
		return errors.StdoutWriteError(err)
	}
	return nil
}
