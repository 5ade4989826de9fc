//go:build linux

package wayland

import (
	"fmt"
	"syscall"
)

// Fixed object ids (client range starts at 2).
const (
	idDisplay  uint32 = 1
	idRegistry uint32 = 2
	idSync     uint32 = 3
	idSeat     uint32 = 4
	idManager  uint32 = 5 // zwlr_data_control_manager_v1
	idSource   uint32 = 6 // zwlr_data_control_source_v1
	idDevice   uint32 = 7 // zwlr_data_control_device_v1
	idConfirm  uint32 = 8
)

type event struct {
	sender  uint32
	opcode  uint16
	payload []byte
	fd      int // -1 unless a descriptor came with the message
}

func (e event) closeFd() {
	if e.fd >= 0 {
		syscall.Close(e.fd) //nolint:errcheck
	}
}

type conn struct {
	fd      int
	pending []byte
	fds     []int
}

func dial(path string) (*conn, error) {
	fd, err := syscall.Socket(syscall.AF_UNIX, syscall.SOCK_STREAM|syscall.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	if err := syscall.Connect(fd, &syscall.SockaddrUnix{Name: path}); err != nil {
		syscall.Close(fd) //nolint:errcheck
		return nil, err
	}
	return &conn{fd: fd}, nil
}

func (c *conn) Close() error {
	for _, fd := range c.fds {
		syscall.Close(fd) //nolint:errcheck
	}
	return syscall.Close(c.fd)
}

func (c *conn) request(objectID uint32, opcode uint16, a args) error {
	msg := append(header(objectID, opcode, len(a)), a...)
	_, err := syscall.Write(c.fd, msg)
	return err
}

// next blocks until a complete event is buffered. Descriptors passed with
// SCM_RIGHTS are handed out in arrival order.
func (c *conn) next() (event, error) {
	for {
		if sender, opcode, size, ok := splitHeader(c.pending); ok {
			ev := event{
				sender:  sender,
				opcode:  opcode,
				payload: append([]byte(nil), c.pending[8:size]...),
				fd:      -1,
			}
			c.pending = c.pending[size:]
			if len(c.fds) > 0 {
				ev.fd, c.fds = c.fds[0], c.fds[1:]
			}
			return ev, nil
		}

		buf := make([]byte, 4096)
		oob := make([]byte, syscall.CmsgSpace(4*8))
		n, oobn, _, _, err := syscall.Recvmsg(c.fd, buf, oob, 0)
		if err != nil {
			return event{}, err
		}
		if n == 0 {
			return event{}, fmt.Errorf("wayland: connection closed")
		}
		c.pending = append(c.pending, buf[:n]...)
		c.collectRights(oob[:oobn])
	}
}

func (c *conn) collectRights(oob []byte) {
	if len(oob) == 0 {
		return
	}
	msgs, err := syscall.ParseSocketControlMessage(oob)
	if err != nil {
		return
	}
	for i := range msgs {
		if rights, err := syscall.ParseUnixRights(&msgs[i]); err == nil {
			c.fds = append(c.fds, rights...)
		}
	}
}

// roundTrip issues wl_display.sync and calls fn on every event until the
// callback fires.
func (c *conn) roundTrip(callback uint32, fn func(event)) error {
	if err := c.request(idDisplay, 0, args(nil).uint(callback)); err != nil {
		return err
	}
	for {
		ev, err := c.next()
		if err != nil {
			return err
		}
		ev.closeFd()
		if ev.sender == callback && ev.opcode == 0 {
			return nil
		}
		if fn != nil {
			fn(ev)
		}
	}
}
