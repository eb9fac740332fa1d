package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

const yamlScenario = `
name: yaml
screen: {width: 800, height: 600}
steps:
  - {at: 0, action: show, toast: a, title: Hi, preset: success}
  - {at: 100, action: hide, toast: a}
`

const jsonScenario = `{
  "name": "json",
  "sample": 10,
  "steps": [
    {"at": 0, "action": "show", "toast": "a", "title": "Hi", "duration": 0},
    {"at": 50, "action": "max_visible", "value": "1"}
  ]
}`

func TestStdinAdapter_Import(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		steps int
	}{
		{name: "yaml", input: yamlScenario, want: "yaml", steps: 2},
		{name: "json", input: jsonScenario, want: "json", steps: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewStdinAdapterWithReader(strings.NewReader(tt.input)).Import(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, sc.Name)
			assert.Len(t, sc.Steps, tt.steps)
		})
	}
}

func TestStdinAdapter_Details(t *testing.T) {
	sc, err := NewStdinAdapterWithReader(strings.NewReader(jsonScenario)).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, simulate.Screen{Width: 1920, Height: 1080}, sc.Screen, "validation fills the default screen")
	assert.Equal(t, 10, sc.Sample)
	require.NotNil(t, sc.Steps[0].Duration)
	assert.Equal(t, 0, *sc.Steps[0].Duration)
	assert.Equal(t, simulate.ActionMaxVisible, sc.Steps[1].Action)
}

func TestStdinAdapter_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   \n"},
		{"bad json", `{"name": `},
		{"unknown json field", `{"name": "x", "colour": "red"}`},
		{"bad yaml", "steps: [\n"},
		{"unknown yaml field", "name: x\nspeed: 3\n"},
		{"invalid step", "steps:\n  - {action: hide, toast: ghost}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStdinAdapterWithReader(strings.NewReader(tt.input)).Import(context.Background())
			var aerr *AdapterError
			require.True(t, errors.As(err, &aerr), "got %v", err)
			assert.Equal(t, "stdin", aerr.Source)
		})
	}
}

func TestFileAdapter_Import(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "scenario.json")
	yamlPath := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonScenario), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlScenario), 0o644))

	sc, err := NewAdapter(jsonPath).Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "json", sc.Name)

	sc, err = NewAdapter(yamlPath).Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yaml", sc.Name)
	assert.Equal(t, simulate.Screen{Width: 800, Height: 600}, sc.Screen)

	_, err = NewAdapter(filepath.Join(dir, "missing.yaml")).Import(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewAdapter(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"", "demo"},
		{"demo", "demo"},
		{"-", "stdin"},
		{"stdin", "stdin"},
		{"scenario.yaml", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewAdapter(tt.source).Name(), tt.source)
	}

	sc, err := NewAdapter("demo").Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo", sc.Name)
}
