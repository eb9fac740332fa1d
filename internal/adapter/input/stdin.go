package input

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

const maxScenarioSize = 10 * 1024 * 1024 // 10MB max

// StdinAdapter reads a scenario from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads a JSON or YAML scenario from standard input.
func (a *StdinAdapter) Import(ctx context.Context) (*simulate.Scenario, error) {
	data, err := io.ReadAll(io.LimitReader(a.reader, maxScenarioSize+1))
	if err != nil {
		return nil, &AdapterError{Source: "stdin", Message: "failed to read stdin", Err: err}
	}
	if len(data) > maxScenarioSize {
		return nil, &AdapterError{Source: "stdin", Message: "scenario exceeds 10MB"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parseScenario("stdin", data, false)
}

// FileAdapter reads a scenario file. Files ending in .json are decoded as
// JSON, everything else as YAML.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a FileAdapter for path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Import reads and parses the scenario file.
func (a *FileAdapter) Import(ctx context.Context) (*simulate.Scenario, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to read scenario", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parseScenario(a.path, data, strings.EqualFold(filepath.Ext(a.path), ".json"))
}

// parseScenario decodes data as JSON when asJSON is set or the document
// starts with '{', and as YAML otherwise.
func parseScenario(source string, data []byte, asJSON bool) (*simulate.Scenario, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &AdapterError{Source: source, Message: "empty scenario"}
	}

	var sc simulate.Scenario
	if asJSON || data[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, &AdapterError{Source: source, Message: "failed to parse JSON scenario", Err: err}
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, &AdapterError{Source: source, Message: "failed to parse YAML scenario", Err: err}
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, &AdapterError{Source: source, Message: "invalid scenario", Err: err}
	}
	return &sc, nil
}
