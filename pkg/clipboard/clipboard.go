// Package clipboard provides text access to the system clipboard.
//
// Reads go straight through the native backend. Writes go through Commit,
// which on Linux hands the text to a short-lived detached copy of this
// binary: X11 and Wayland only keep a selection while its owner process is
// alive, so the writer has to outlive the command that asked for the copy.
package clipboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cb/pkg/errors"

	atotto "github.com/atotto/clipboard"
)

// ServeCommand is the hidden subcommand the detached writer runs under.
const ServeCommand = "__clipboard-serve"

// DefaultGrace is how long the detached writer keeps running after the
// backend reports success.
const DefaultGrace = time.Second

// Accessor reads and writes clipboard text synchronously.
type Accessor interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type native struct{}

func (native) ReadAll() (string, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return "", errors.ClipboardReadError(err)
	}
	return text, nil
}

func (native) WriteAll(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return errors.ClipboardWriteError(err)
	}
	return nil
}

// Native returns the host clipboard, or a clipboard init error when no
// backend is available (for example no xclip, xsel or wl-clipboard on Linux).
func Native() (Accessor, error) {
	if atotto.Unsupported {
		return nil, errors.ClipboardInitError(fmt.Errorf("no clipboard backend available; install xclip, xsel or wl-clipboard"))
	}
	return native{}, nil
}

// payload is what the parent hands to the detached writer. Text travels as
// bytes (base64 in JSON) so it arrives exactly as sent.
type payload struct {
	Text []byte `json:"text"`
}

func EncodePayload(w io.Writer, text string) error {
	return json.NewEncoder(w).Encode(payload{Text: []byte(text)})
}

func DecodePayload(r io.Reader) (string, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return "", fmt.Errorf("decode clipboard payload: %w", err)
	}
	return string(p.Text), nil
}

// textFormats lists the MIME types a text selection is offered under.
func textFormats(text string) map[string][]byte {
	data := []byte(text)
	return map[string][]byte{
		"text/plain;charset=utf-8": data,
		"text/plain":               data,
		"UTF8_STRING":              data,
		"STRING":                   data,
		"TEXT":                     data,
	}
}
