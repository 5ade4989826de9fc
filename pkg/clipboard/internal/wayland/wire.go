//go:build linux

package wayland

import (
	"encoding/binary"
	"fmt"
)

var le = binary.LittleEndian

// header packs the sender id and the size/opcode word of a wire message.
func header(objectID uint32, opcode uint16, argLen int) []byte {
	size := 8 + argLen
	buf := make([]byte, 8, size)
	le.PutUint32(buf[0:], objectID)
	le.PutUint32(buf[4:], uint32(opcode)|uint32(size)<<16)
	return buf
}

// splitHeader returns the sender id, opcode and total size of the message at
// the start of buf. ok is false until a whole message is buffered.
func splitHeader(buf []byte) (objectID uint32, opcode uint16, size int, ok bool) {
	if len(buf) < 8 {
		return 0, 0, 0, false
	}
	word := le.Uint32(buf[4:8])
	size = int(word >> 16)
	if size < 8 || len(buf) < size {
		return 0, 0, 0, false
	}
	return le.Uint32(buf[0:4]), uint16(word & 0xffff), size, true
}

type args []byte

func (a args) uint(v uint32) args {
	return le.AppendUint32(a, v)
}

// str appends a wire string: length including the NUL, bytes, padding to 4.
func (a args) str(s string) args {
	n := len(s) + 1
	a = le.AppendUint32(a, uint32(n))
	a = append(a, s...)
	for pad := (n+3)&^3 - len(s); pad > 0; pad-- {
		a = append(a, 0)
	}
	return a
}

// readString decodes a wire string and returns the remaining payload.
func readString(data []byte) (string, []byte, error) {
	if len(data) < 4 {
		return "", data, fmt.Errorf("wayland: short string length field")
	}
	n := int(le.Uint32(data[:4]))
	data = data[4:]
	if n == 0 {
		return "", data, nil
	}
	padded := (n + 3) &^ 3
	if len(data) < padded {
		return "", data, fmt.Errorf("wayland: short string data")
	}
	return string(data[:n-1]), data[padded:], nil
}
