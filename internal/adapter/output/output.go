// Package output provides output formatters for simulation timelines.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

// Formatter formats a timeline for output.
type Formatter interface {
	// Format writes the formatted timeline to the writer.
	Format(w io.Writer, tl *simulate.Timeline) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatEvents FormatType = "events"
	FormatJSON   FormatType = "json"
	FormatPlain  FormatType = "plain"
	FormatYAML   FormatType = "yaml"
)

// FormatTypes lists the supported formats.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatEvents, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatEvents:
		return NewEventsFormatter(opts), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom per-event template for the events format
	ShowIndex  bool   // Show 1-based index prefix
	ShowTime   bool   // Show the virtual time of each line
	ShowFrames bool   // Include frames in plain output
	NameMaxLen int    // Maximum toast name length (0 = unlimited)
	Separator  string // Field separator for the events format
	Compact    bool   // Unindented JSON
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:  false,
		ShowTime:   true,
		ShowFrames: true,
		Separator:  " | ",
	}
}

// formatAt renders a virtual timestamp in ms, e.g. "1,250ms".
func formatAt(ms int64) string {
	return humanize.Comma(ms) + "ms"
}

// formatSpan renders a duration in ms the way time.Duration does, e.g. "5.25s".
func formatSpan(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
