//go:build linux

// Package wayland owns the Wayland selection through wlr-data-control
// without linking libwayland. Only the handful of requests needed to offer
// and serve a selection are implemented.
package wayland

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// ErrUnavailable is returned when no compositor socket can be reached or the
// compositor lacks wlr-data-control. Callers fall back to another backend.
var ErrUnavailable = errors.New("wayland: data control unavailable")

const managerInterface = "zwlr_data_control_manager_v1"

// SocketPath resolves the compositor socket from the environment.
func SocketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if filepath.IsAbs(display) {
		return display, nil
	}
	runtime := os.Getenv("XDG_RUNTIME_DIR")
	if runtime == "" {
		return "", fmt.Errorf("%w: XDG_RUNTIME_DIR not set", ErrUnavailable)
	}
	return filepath.Join(runtime, display), nil
}

// Own claims the selection, offering each MIME type in formats, and blocks
// while serving paste requests. It returns nil once another client takes
// the selection or the compositor goes away. ready, if non-nil, is called
// after the compositor has acknowledged ownership.
func Own(formats map[string][]byte, ready func()) error {
	path, err := SocketPath()
	if err != nil {
		return err
	}
	c, err := dial(path)
	if err != nil {
		return fmt.Errorf("%w: connect %s: %v", ErrUnavailable, path, err)
	}
	defer c.Close() //nolint:errcheck

	if err := claim(c, formats); err != nil {
		return err
	}
	if ready != nil {
		ready()
	}
	return serve(c, formats)
}

type globals struct {
	seat, manager       uint32
	hasSeat, hasManager bool
}

func discover(c *conn) (globals, error) {
	var g globals
	if err := c.request(idDisplay, 1, args(nil).uint(idRegistry)); err != nil {
		return g, err
	}
	err := c.roundTrip(idSync, func(ev event) {
		if ev.sender != idRegistry || ev.opcode != 0 || len(ev.payload) < 4 {
			return
		}
		name := le.Uint32(ev.payload[:4])
		iface, _, err := readString(ev.payload[4:])
		if err != nil {
			return
		}
		switch iface {
		case "wl_seat":
			if !g.hasSeat {
				g.seat, g.hasSeat = name, true
			}
		case managerInterface:
			g.manager, g.hasManager = name, true
		}
	})
	if err != nil {
		return g, err
	}
	if !g.hasSeat {
		return g, fmt.Errorf("%w: wl_seat not advertised", ErrUnavailable)
	}
	if !g.hasManager {
		return g, fmt.Errorf("%w: %s not advertised", ErrUnavailable, managerInterface)
	}
	return g, nil
}

func claim(c *conn, formats map[string][]byte) error {
	g, err := discover(c)
	if err != nil {
		return err
	}

	// wl_registry.bind carries the interface name and version inline.
	binds := []args{
		args(nil).uint(g.seat).str("wl_seat").uint(1).uint(idSeat),
		args(nil).uint(g.manager).str(managerInterface).uint(2).uint(idManager),
	}
	for _, a := range binds {
		if err := c.request(idRegistry, 0, a); err != nil {
			return err
		}
	}

	if err := c.request(idManager, 0, args(nil).uint(idSource)); err != nil {
		return err
	}
	for mime := range formats {
		if err := c.request(idSource, 0, args(nil).str(mime)); err != nil {
			return err
		}
	}
	if err := c.request(idManager, 1, args(nil).uint(idDevice).uint(idSeat)); err != nil {
		return err
	}
	if err := c.request(idDevice, 0, args(nil).uint(idSource)); err != nil {
		return err
	}
	return c.roundTrip(idConfirm, nil)
}

func serve(c *conn, formats map[string][]byte) error {
	for {
		ev, err := c.next()
		if err != nil {
			// Compositor hung up; nothing left to serve.
			return nil
		}
		if ev.sender != idSource {
			ev.closeFd()
			continue
		}
		switch ev.opcode {
		case 0: // send(mime_type, fd)
			mime, _, _ := readString(ev.payload)
			if data, ok := formats[mime]; ok && ev.fd >= 0 {
				writeAll(ev.fd, data)
			}
			ev.closeFd()
		case 1: // cancelled
			ev.closeFd()
			return nil
		default:
			ev.closeFd()
		}
	}
}

func writeAll(fd int, data []byte) {
	for len(data) > 0 {
		n, err := syscall.Write(fd, data)
		if err != nil {
			if err == syscall.EINTR || err == syscall.EAGAIN {
				continue
			}
			return
		}
		data = data[n:]
	}
}
