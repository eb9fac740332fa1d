package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboard_Resolve(t *testing.T) {
	installed := func(names ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, n := range names {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", exec.ErrNotFound
		}
	}

	tests := []struct {
		name      string
		command   string
		installed []string
		want      []string
		wantErr   error
	}{
		{"configured", "pbcopy -pboard general", nil, []string{"pbcopy", "-pboard", "general"}, nil},
		{"configured wins over installed", "my-copy", []string{"wl-copy"}, []string{"my-copy"}, nil},
		{"wayland first", "", []string{"xclip", "wl-copy"}, []string{"wl-copy"}, nil},
		{"xclip", "", []string{"xclip", "xsel"}, []string{"xclip", "-selection", "clipboard"}, nil},
		{"xsel", "", []string{"xsel"}, []string{"xsel", "--clipboard", "--input"}, nil},
		{"none", "   ", nil, nil, ErrNoClipboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClipboard(tt.command)
			c.lookPath = installed(tt.installed...)

			got, err := c.resolve()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClipboard_Copy(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "clip.txt")
	script := filepath.Join(t.TempDir(), "copy.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat > "+out+"\n"), 0o755))

	err := newClipboard(script).copy(context.Background(), "position: top-right\n")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "position: top-right\n", string(data))
}

func TestClipboard_CopyFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := filepath.Join(t.TempDir(), "fail.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'no display' >&2\nexit 3\n"), 0o755))

	err := newClipboard(script).copy(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}
