package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// clipboardTimeout bounds how long a clipboard command may run.
const clipboardTimeout = 5 * time.Second

// ErrNoClipboard is returned when no clipboard command is configured and
// none of the known ones is installed.
var ErrNoClipboard = errors.New("no clipboard command available")

// clipboardCandidates are tried in order when none is configured. wl-copy
// comes first so Wayland sessions with XWayland do not pick xclip.
var clipboardCandidates = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// clipboard writes text to a command's stdin.
type clipboard struct {
	argv     []string
	lookPath func(string) (string, error)
}

// newClipboard returns a clipboard using the configured command line, or the
// first installed candidate when command is empty.
func newClipboard(command string) clipboard {
	return clipboard{argv: strings.Fields(command), lookPath: exec.LookPath}
}

// resolve returns the command line to run.
func (c clipboard) resolve() ([]string, error) {
	if len(c.argv) > 0 {
		return c.argv, nil
	}
	for _, argv := range clipboardCandidates {
		if _, err := c.lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, ErrNoClipboard
}

func (c clipboard) copy(ctx context.Context, text string) error {
	argv, err := c.resolve()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}
