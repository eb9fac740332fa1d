package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

// PlainFormatter formats timelines as human readable text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes a summary line, the events and, if enabled, every frame.
func (f *PlainFormatter) Format(w io.Writer, tl *simulate.Timeline) error {
	var sb strings.Builder

	name := tl.Scenario
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&sb, "scenario %s on %dx%d: %s, %s over %s\n",
		name, tl.Screen.Width, tl.Screen.Height,
		plural(len(tl.Events), "event"), plural(len(tl.Frames), "frame"), formatSpan(tl.End))

	sb.WriteString("\nevents:\n")
	for i, e := range tl.Events {
		sb.WriteString("  ")
		if f.opts.ShowIndex {
			fmt.Fprintf(&sb, "[%d] ", i+1)
		}
		if f.opts.ShowTime {
			fmt.Fprintf(&sb, "%10s  ", formatAt(e.At))
		}
		fmt.Fprintf(&sb, "%-7s %s\n", e.Event, truncate(e.Toast, f.opts.NameMaxLen))
	}

	if f.opts.ShowFrames {
		sb.WriteString("\nframes:\n")
		for _, fr := range tl.Frames {
			f.formatFrame(&sb, fr)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *PlainFormatter) formatFrame(sb *strings.Builder, fr simulate.Frame) {
	fmt.Fprintf(sb, "  @%s", formatAt(fr.At))
	if len(fr.Toasts) == 0 {
		sb.WriteString(" (empty)")
	}
	if len(fr.Waiting) > 0 {
		fmt.Fprintf(sb, " waiting: %s", strings.Join(fr.Waiting, ", "))
	}
	sb.WriteString("\n")

	for _, ts := range fr.Toasts {
		hover := ""
		if ts.Hovered {
			hover = " hovered"
		}
		fmt.Fprintf(sb, "    %-12s %-10s (%d,%d) %dx%d opacity %s%% bar %d%s\n",
			truncate(ts.Name, f.opts.NameMaxLen), ts.Phase, ts.X, ts.Y, ts.Width, ts.Height,
			humanize.FtoaWithDigits(ts.Opacity*100, 1), ts.DurationBar, hover)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}
