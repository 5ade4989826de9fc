package clipboard

import (
	"io"

	"cb/pkg/errors"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 returns a commit function that asks the terminal on w to set its
// clipboard through an OSC 52 escape sequence. Useful over SSH, where the
// local clipboard is out of reach.
func OSC52(w io.Writer) func(string) error {
	return func(text string) error {
		if _, err := osc52.New(text).WriteTo(w); err != nil {
			return errors.ClipboardWriteError(err)
		}
		return nil
	}
}
