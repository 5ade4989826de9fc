package utils

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

const (
	KB = 1024
	MB = KB * 1024
	GB = MB * 1024
	TB = GB * 1024
)

// FormatSize renders a byte count in the largest binary unit whose value
// stays below 1024. Plain bytes are shown as an integer, every other unit
// with two decimals. TB is the largest unit.
func FormatSize(bytes uint64) string {
	b := float64(bytes)
	switch {
	case bytes < KB:
		return strconv.FormatUint(bytes, 10) + " bytes"
	case bytes < MB:
		return fmt.Sprintf("%.2f KB", b/KB)
	case bytes < GB:
		return fmt.Sprintf("%.2f MB", b/MB)
	case bytes < TB:
		return fmt.Sprintf("%.2f GB", b/GB)
	default:
		return fmt.Sprintf("%.2f TB", b/TB)
	}
}

// IsText reports whether data is valid UTF-8.
func IsText(data []byte) bool {
	return utf8.Valid(data)
}
