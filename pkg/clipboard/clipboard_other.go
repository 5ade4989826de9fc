//go:build !linux

package clipboard

import (
	"io"
	"time"

	"cb/pkg/errors"
)

// Commit writes text to the clipboard before returning.
func Commit(text string) error {
	acc, err := Native()
	if err != nil {
		return err
	}
	return acc.WriteAll(text)
}

// Serve is only reached when the hidden command is invoked by hand; the
// write is synchronous here so there is nothing to wait for.
func Serve(r io.Reader, _ time.Duration) error {
	text, err := DecodePayload(r)
	if err != nil {
		return errors.ClipboardWriteError(err)
	}
	return Commit(text)
}
