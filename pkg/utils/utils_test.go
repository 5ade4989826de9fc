package utils

import (
	"fmt"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  string
	}{
		{"zero", 0, "0 bytes"},
		{"one byte", 1, "1 bytes"},
		{"largest byte count", 1023, "1023 bytes"},
		{"one kilobyte", 1024, "1.00 KB"},
		{"two kilobytes", 2048, "2.00 KB"},
		{"kilobyte and a half", 1536, "1.50 KB"},
		{"rounds to two decimals", 1100, "1.07 KB"},
		{"one megabyte", MB, "1.00 MB"},
		{"megabyte and a quarter", MB + MB/4, "1.25 MB"},
		{"one gigabyte", GB, "1.00 GB"},
		{"one terabyte", TB, "1.00 TB"},
		{"beyond terabytes stays in TB", 2048 * TB, "2048.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSize(tt.bytes); got != tt.want {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatSize_ByteRange(t *testing.T) {
	for b := uint64(0); b < KB; b++ {
		want := fmt.Sprintf("%d bytes", b)
		if got := FormatSize(b); got != want {
			t.Fatalf("FormatSize(%d) = %q, want %q", b, got, want)
		}
	}
}

func TestFormatSize_UnitBoundaries(t *testing.T) {
	tests := []struct {
		unit   uint64
		suffix string
	}{
		{KB, "KB"},
		{MB, "MB"},
		{GB, "GB"},
		{TB, "TB"},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			for _, mult := range []uint64{1, 3, 10, 512, 1000} {
				b := tt.unit * mult
				want := fmt.Sprintf("%.2f %s", float64(mult), tt.suffix)
				if got := FormatSize(b); got != want {
					t.Errorf("FormatSize(%d) = %q, want %q", b, got, want)
				}
			}
		})
	}
}

func TestIsText(t *testing.T) {
	if !IsText([]byte("héllo, 世界")) {
		t.Error("IsText(valid UTF-8) = false")
	}
	if !IsText(nil) {
		t.Error("IsText(empty) = false")
	}
	if IsText([]byte{0xff, 0xfe, 0x00}) {
		t.Error("IsText(invalid UTF-8) = true")
	}
}
