package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps stderr quiet unless something needs attention.
const DefaultLevel = "warn"

var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	SetOutput(os.Stderr)
	SetLevel(DefaultLevel)
}

// SetOutput redirects log output. Stdout is reserved for clipboard data, so
// the default sink is a console writer on stderr.
func SetOutput(w io.Writer) {
	log = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}).
		With().
		Timestamp().
		Logger()
}

func GetLogger() zerolog.Logger {
	return log
}

func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// Levels lists the names accepted by SetLevel, for flag completion.
func Levels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "disabled"}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}
