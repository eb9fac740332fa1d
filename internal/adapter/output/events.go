package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

// EventsFormatter writes one line per lifecycle event, suitable for grep or
// a fuzzy finder.
type EventsFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewEventsFormatter creates a new events formatter. An invalid custom
// template falls back to the default line format.
func NewEventsFormatter(opts FormatterOptions) *EventsFormatter {
	f := &EventsFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("events").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes the timeline's events, one per line.
func (f *EventsFormatter) Format(w io.Writer, tl *simulate.Timeline) error {
	for i, e := range tl.Events {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *EventsFormatter) formatLine(index int, e simulate.EventRecord) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{Index: index, Event: e, At: formatAt(e.At)}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	// Default format: [index] [time] event toast
	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	if f.opts.ShowTime {
		parts = append(parts, formatAt(e.At))
	}
	parts = append(parts, e.Event)
	if e.Toast != "" {
		parts = append(parts, truncate(e.Toast, f.opts.NameMaxLen))
	}

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index int
	Event simulate.EventRecord
	At    string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string { return truncate(s, maxLen) },
		"at":       formatAt,
		"span":     formatSpan,
		"upper":    strings.ToUpper,
	}
}
