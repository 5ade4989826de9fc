package errors

import (
	"fmt"
	"io"
	"os"

	"cb/pkg/logger"
	"cb/pkg/terminal"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess ExitCode = 0
	ExitCodeGeneral ExitCode = 1
)

// Kind identifies the failing operation. Every kind exits with ExitCodeGeneral.
type Kind int

const (
	KindUsage Kind = iota
	KindClipboardInit
	KindClipboardRead
	KindClipboardWrite
	KindStdinRead
	KindStdoutWrite
	KindChildSpawn
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindClipboardInit:
		return "clipboard_init"
	case KindClipboardRead:
		return "clipboard_read"
	case KindClipboardWrite:
		return "clipboard_write"
	case KindStdinRead:
		return "stdin_read"
	case KindStdoutWrite:
		return "stdout_write"
	case KindChildSpawn:
		return "child_spawn"
	default:
		return "unknown"
	}
}

// Standardized messages naming the failing operation
const (
	ErrMsgTooManyArgs     = "too many arguments"
	ErrMsgBothPiped       = "both stdin and stdout are piped"
	ErrMsgTextWithPipe    = "text argument and redirection specified together"
	ErrMsgClipboardInit   = "Failed to initialize clipboard"
	ErrMsgClipboardRead   = "Failed to read from clipboard"
	ErrMsgClipboardWrite  = "Failed to write to clipboard"
	ErrMsgStdinRead       = "Failed to read from stdin"
	ErrMsgStdoutWrite     = "Failed to write to stdout"
	ErrMsgChildSpawn      = "Failed to spawn clipboard writer"
	ErrMsgInvalidUTF8Text = "input is not valid UTF-8 text"
	ErrMsgInvalidArgText  = "text argument is not valid UTF-8 text"
)

type Error struct {
	Kind       Kind
	Code       ExitCode
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    ExitCodeGeneral,
		Message: message,
	}
}

func NewWithError(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:       kind,
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

// Wrap attaches the standard message for kind to err. An *Error passes
// through untouched so the innermost failing operation keeps its name.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return NewWithError(kind, kind.message(), err)
}

func (k Kind) message() string {
	switch k {
	case KindClipboardInit:
		return ErrMsgClipboardInit
	case KindClipboardRead:
		return ErrMsgClipboardRead
	case KindClipboardWrite:
		return ErrMsgClipboardWrite
	case KindStdinRead:
		return ErrMsgStdinRead
	case KindStdoutWrite:
		return ErrMsgStdoutWrite
	case KindChildSpawn:
		return ErrMsgChildSpawn
	default:
		return "invalid usage"
	}
}

func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Kind == kind
	}

	return false
}

func UsageError(message string) *Error {
	return New(KindUsage, message)
}

func TooManyArgumentsError() *Error {
	return UsageError(ErrMsgTooManyArgs)
}

func BothPipedError() *Error {
	return UsageError(ErrMsgBothPiped)
}

func TextWithRedirectionError() *Error {
	return UsageError(ErrMsgTextWithPipe)
}

func ClipboardInitError(err error) *Error {
	return NewWithError(KindClipboardInit, ErrMsgClipboardInit, err)
}

func ClipboardReadError(err error) *Error {
	return NewWithError(KindClipboardRead, ErrMsgClipboardRead, err)
}

func ClipboardWriteError(err error) *Error {
	return NewWithError(KindClipboardWrite, ErrMsgClipboardWrite, err)
}

func StdinReadError(err error) *Error {
	return NewWithError(KindStdinRead, ErrMsgStdinRead, err)
}

func StdoutWriteError(err error) *Error {
	return NewWithError(KindStdoutWrite, ErrMsgStdoutWrite, err)
}

func ChildSpawnError(err error) *Error {
	return NewWithError(KindChildSpawn, ErrMsgChildSpawn, err)
}

// HandleReturn reports err on stderr as a single "Error:" line and returns
// the exit code. The caller is responsible for exiting the program.
func HandleReturn(err error) ExitCode {
	return Report(os.Stderr, err)
}

// colorize reports whether w is an interactive terminal. Replaced in tests.
var colorize = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && terminal.IsTerminal(f)
}

// Report writes the one-line diagnostic for err to w. The prefix is red only
// when w itself is a terminal, so redirected stderr stays plain text.
func Report(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	exitCode := ExitCodeGeneral
	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		logger.Debug().Err(e.Underlying).Str("kind", e.Kind.String()).Msg(e.Message)
	} else {
		logger.Debug().Err(err).Msg("operation failed")
	}

	red := color.New(color.FgRed, color.Bold)
	if colorize(w) {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	red.Fprint(w, "Error: ") //nolint:errcheck
	fmt.Fprintln(w, err.Error())

	return exitCode
}
