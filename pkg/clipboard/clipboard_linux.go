//go:build linux

package clipboard

import (
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"cb/pkg/clipboard/internal/wayland"
	"cb/pkg/errors"
	"cb/pkg/logger"
)

// writerExecutable locates the binary re-run as the detached writer.
var writerExecutable = func() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return os.Args[0]
}

// Commit writes text to the clipboard by spawning a detached writer and
// returns without waiting for it.
func Commit(text string) error {
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		// X11: the writer needs a backend, so report a missing one here
		// rather than from a child nobody waits on.
		if _, err := Native(); err != nil {
			return err
		}
	}
	return spawnWriter(text)
}

func spawnWriter(text string) error {
	// The payload goes through an unlinked temp file instead of a pipe: the
	// child inherits the descriptor directly, so nothing in this process has
	// to stay alive to feed it.
	f, err := os.CreateTemp("", "cb-payload-*")
	if err != nil {
		return errors.ChildSpawnError(err)
	}
	defer f.Close()
	os.Remove(f.Name()) //nolint:errcheck

	if err := EncodePayload(f, text); err != nil {
		return errors.ChildSpawnError(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.ChildSpawnError(err)
	}

	cmd := exec.Command(writerExecutable(), ServeCommand)
	cmd.Stdin = f
	cmd.Stderr = os.Stderr
	// New session so the writer survives the parent and its terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return errors.ChildSpawnError(err)
	}

	logger.Debug().Int("pid", cmd.Process.Pid).Int("bytes", len(text)).Msg("spawned clipboard writer")
	return cmd.Process.Release()
}

// Serve runs inside the detached writer. On Wayland it owns the selection
// until another client replaces it. Otherwise it writes through the native
// backend and stays alive for grace so the selection can be picked up.
func Serve(r io.Reader, grace time.Duration) error {
	text, err := DecodePayload(r)
	if err != nil {
		return errors.ClipboardWriteError(err)
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		err := wayland.Own(textFormats(text), func() {
			logger.Debug().Int("bytes", len(text)).Msg("wayland selection claimed")
		})
		if err == nil {
			return nil
		}
		if !stderrors.Is(err, wayland.ErrUnavailable) {
			return errors.ClipboardWriteError(err)
		}
		logger.Debug().Err(err).Msg("falling back to native clipboard backend")
	}

	return writeAndLinger(text, grace)
}

func writeAndLinger(text string, grace time.Duration) error {
	acc, err := Native()
	if err != nil {
		return err
	}
	if err := acc.WriteAll(text); err != nil {
		return err
	}
	time.Sleep(grace)
	return nil
}
