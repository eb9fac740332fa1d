package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

// JSONFormatter formats timelines as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the timeline as a JSON object.
func (f *JSONFormatter) Format(w io.Writer, tl *simulate.Timeline) error {
	encoder := json.NewEncoder(w)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(tl)
}
