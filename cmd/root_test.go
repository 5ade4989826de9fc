package cmd

import (
	"bytes"
	"strings"
	"testing"

	"cb/pkg/clipboard"
	"cb/pkg/dispatch"
	"cb/pkg/errors"
	"cb/pkg/terminal"
)

type memoryClipboard struct {
	text   string
	writes int
}

func (m *memoryClipboard) ReadAll() (string, error) { return m.text, nil }

func (m *memoryClipboard) WriteAll(text string) error {
	m.writes++
	m.text = text
	return nil
}

// runCLI executes the root command against an in-memory clipboard.
func runCLI(t *testing.T, mem *memoryClipboard, mode terminal.StreamMode, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	origDetect, origNew := detectStreams, newDispatcher
	detectStreams = func() terminal.StreamMode { return mode }
	newDispatcher = func() *dispatch.Dispatcher {
		return &dispatch.Dispatcher{
			Stdin:      strings.NewReader(stdin),
			Stdout:     out,
			Open:       func() (clipboard.Accessor, error) { return mem, nil },
			Commit:     mem.WriteAll,
			SizeFormat: dispatch.FormatText,
		}
	}
	defer func() {
		detectStreams, newDispatcher = origDetect, origNew
		sizeFormat = string(dispatch.FormatText)
		osc52Flag = false
	}()

	err := run(args)
	return out.String(), err
}

func TestCLI_PrintsClipboard(t *testing.T) {
	mem := &memoryClipboard{text: "pasted"}
	out, err := runCLI(t, mem, terminal.StreamMode{StdoutRedirected: true}, "")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "pasted" {
		t.Errorf("stdout = %q, want %q", out, "pasted")
	}
}

func TestCLI_LiteralWordsThatLookLikeCommands(t *testing.T) {
	for _, word := range []string{"help", "completion", "version", "no-help"} {
		mem := &memoryClipboard{}
		if _, err := runCLI(t, mem, terminal.StreamMode{}, "", word); err != nil {
			t.Fatalf("Execute(%q) error: %v", word, err)
		}
		if mem.text != word {
			t.Errorf("clipboard = %q, want %q", mem.text, word)
		}
	}
}

func TestCLI_DashText(t *testing.T) {
	mem := &memoryClipboard{}
	if _, err := runCLI(t, mem, terminal.StreamMode{}, "", "--", "-n"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if mem.text != "-n" {
		t.Errorf("clipboard = %q, want %q", mem.text, "-n")
	}
}

func TestCLI_LoneDashLeadingArgumentIsText(t *testing.T) {
	for _, text := range []string{"-5 degrees", "-n", "--bogus", "-x=1"} {
		mem := &memoryClipboard{}
		if _, err := runCLI(t, mem, terminal.StreamMode{}, "", text); err != nil {
			t.Fatalf("Execute(%q) error: %v", text, err)
		}
		if mem.text != text {
			t.Errorf("clipboard = %q, want %q", mem.text, text)
		}
	}
}

func TestCLI_LoneRegisteredFlagStaysAFlag(t *testing.T) {
	mem := &memoryClipboard{text: "pasted"}
	out, err := runCLI(t, mem, terminal.StreamMode{StdoutRedirected: true}, "", "--osc52")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if mem.writes != 0 || mem.text != "pasted" {
		t.Errorf("--osc52 was copied as text: clipboard = %q", mem.text)
	}
	if out != "pasted" {
		t.Errorf("stdout = %q, want %q", out, "pasted")
	}
}

func TestLiteralArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"plain word", []string{"hello"}, []string{"hello"}},
		{"negative number", []string{"-5"}, []string{"--", "-5"}},
		{"unknown long flag", []string{"--bogus"}, []string{"--", "--bogus"}},
		{"lone dash", []string{"-"}, []string{"-"}},
		{"double dash", []string{"--"}, []string{"--"}},
		{"help shorthand", []string{"-h"}, []string{"-h"}},
		{"long flag with value", []string{"--log-level=debug"}, []string{"--log-level=debug"}},
		{"osc52", []string{"--osc52"}, []string{"--osc52"}},
		{"two arguments untouched", []string{"-a", "-b"}, []string{"-a", "-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := literalArgs(rootCmd, tt.args)
			if strings.Join(got, "\x00") != strings.Join(tt.want, "\x00") || len(got) != len(tt.want) {
				t.Errorf("literalArgs(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestCLI_CopiesStdin(t *testing.T) {
	mem := &memoryClipboard{}
	if _, err := runCLI(t, mem, terminal.StreamMode{StdinRedirected: true}, "piped\n"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if mem.text != "piped\n" {
		t.Errorf("clipboard = %q, want %q", mem.text, "piped\n")
	}
}

func TestCLI_Size(t *testing.T) {
	mem := &memoryClipboard{text: strings.Repeat("x", 2048)}
	out, err := runCLI(t, mem, terminal.StreamMode{}, "", "size", "ignored")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "2.00 KB\n" {
		t.Errorf("stdout = %q, want %q", out, "2.00 KB\n")
	}

	out, err = runCLI(t, mem, terminal.StreamMode{}, "", "size", "--format", "json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, `"human": "2.00 KB"`) {
		t.Errorf("stdout = %q, want JSON report", out)
	}
}

func TestCLI_SizeIgnoresDashLeadingExtras(t *testing.T) {
	mem := &memoryClipboard{text: "abc"}
	out, err := runCLI(t, mem, terminal.StreamMode{}, "", "size", "-x", "--whatever")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "3 bytes\n" {
		t.Errorf("stdout = %q, want %q", out, "3 bytes\n")
	}
}

func TestCLI_SizeBadFormat(t *testing.T) {
	mem := &memoryClipboard{}
	_, err := runCLI(t, mem, terminal.StreamMode{}, "", "size", "--format", "table")
	if !errors.IsKind(err, errors.KindUsage) {
		t.Errorf("Execute() = %v, want usage error", err)
	}
}

func TestCLI_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mode    terminal.StreamMode
		args    []string
		wantErr string
	}{
		{"three arguments", terminal.StreamMode{}, []string{"a", "b", "c"}, errors.ErrMsgTooManyArgs},
		{"both piped", terminal.StreamMode{StdinRedirected: true, StdoutRedirected: true}, nil, errors.ErrMsgBothPiped},
		{"text and stdin", terminal.StreamMode{StdinRedirected: true}, []string{"x"}, errors.ErrMsgTextWithPipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := &memoryClipboard{text: "prior"}
			_, err := runCLI(t, mem, tt.mode, "input", tt.args...)
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Execute() = %v, want %q", err, tt.wantErr)
			}
			if mem.writes != 0 || mem.text != "prior" {
				t.Error("clipboard changed on a rejected invocation")
			}
		})
	}
}

func TestCLI_FlagCompletions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"log level", []string{"__complete", "--log-level", ""}, []string{"debug", "warn", "disabled"}},
		{"size format", []string{"__complete", "size", "--format", ""}, []string{"text", "json", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			rootCmd.SetOut(buf)
			rootCmd.SetErr(&bytes.Buffer{})
			defer func() {
				rootCmd.SetOut(nil)
				rootCmd.SetErr(nil)
			}()

			if err := run(tt.args); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			lines := strings.Split(buf.String(), "\n")
			for _, want := range tt.want {
				found := false
				for _, line := range lines {
					if line == want {
						found = true
					}
				}
				if !found {
					t.Errorf("completions %q missing %q", buf.String(), want)
				}
			}
		})
	}
}
