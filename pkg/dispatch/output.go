package dispatch

import (
	"encoding/json"
	"fmt"
	"io"

	"cb/pkg/utils"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how the size report is printed.
type OutputFormat string

const (
	// FormatText is the human-readable size alone, e.g. "2.00 KB"
	FormatText OutputFormat = "text"
	// FormatJSON outputs as JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs as YAML
	FormatYAML OutputFormat = "yaml"
)

// ValidFormats returns a list of valid output formats
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat accepts the names in ValidFormats.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, json, yaml)", s)
	}
}

// SizeReport is the structured form of the size report.
type SizeReport struct {
	Bytes uint64 `json:"bytes" yaml:"bytes"`
	Human string `json:"human" yaml:"human"`
}

// OutputWriter handles structured output formatting
type OutputWriter struct {
	format OutputFormat
	writer io.Writer
}

func NewOutputWriter(w io.Writer, format OutputFormat) *OutputWriter {
	if format != FormatJSON && format != FormatYAML {
		format = FormatText
	}
	return &OutputWriter{
		format: format,
		writer: w,
	}
}

func (w *OutputWriter) WriteSize(bytes uint64) error {
	report := SizeReport{Bytes: bytes, Human: utils.FormatSize(bytes)}
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case FormatYAML:
		encoder := yaml.NewEncoder(w.writer)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	default:
		_, err := fmt.Fprintln(w.writer, report.Human)
		return err
	}
}
