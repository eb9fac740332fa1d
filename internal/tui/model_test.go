package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/toast"
)

var start = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type harness struct {
	t   *testing.T
	m   Model
	now time.Time
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &harness{
		t:   t,
		m:   New(cfg, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))),
		now: start,
	}
	// 100x30 for toasts plus the status line.
	h.send(tea.WindowSizeMsg{Width: 100, Height: 31})
	h.send(frameMsg(h.now))
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	require.True(h.t, ok)
	h.m = m
	return cmd
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.now = h.now.Add(d)
	h.send(frameMsg(h.now))
}

func (h *harness) reg() *toast.Registry {
	return h.m.eng.reg
}

func TestSpawnAndExpire(t *testing.T) {
	h := newHarness(t, nil)

	h.press("1")
	h.advance(time.Second)

	require.Equal(t, 1, h.reg().VisibleCount())
	tt := h.reg().Visible()[0]
	assert.Equal(t, "Saved", tt.Title())
	assert.Equal(t, model.PresetSuccess, tt.Style().Preset)
	assert.Equal(t, model.PhaseVisible, tt.Phase())
	assert.Equal(t, model.Size{Width: 44, Height: 4}, tt.Layout().Size)
	// Content ends two columns from the right edge and one row above the
	// status line.
	assert.Equal(t, model.Point{X: 49, Y: 20}, tt.Position())

	view := ansi.Strip(h.m.View())
	assert.Contains(t, view, "Saved")
	assert.Contains(t, view, "Your changes were written to disk.")
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "×")

	h.advance(5 * time.Second)
	assert.Equal(t, 0, h.reg().VisibleCount())
	assert.Empty(t, h.m.eng.canvas.surfaces)
	assert.Equal(t, 1, h.m.eng.counts[toast.EventShown])
	assert.Equal(t, 1, h.m.eng.counts[toast.EventClosed])
	assert.NotContains(t, ansi.Strip(h.m.View()), "Saved")
}

func TestDarkPresets(t *testing.T) {
	h := newHarness(t, nil)

	h.press("d", "3")
	require.Equal(t, 1, h.reg().VisibleCount())
	assert.Equal(t, model.PresetErrorDark, h.reg().Visible()[0].Style().Preset)

	h.press("n")
	require.Equal(t, 2, h.reg().VisibleCount())
	assert.Equal(t, model.Preset(0), h.reg().Visible()[1].Style().Preset)
}

func TestQueueAndCapacity(t *testing.T) {
	h := newHarness(t, nil)

	h.press("-", "-")
	assert.Equal(t, 1, h.reg().MaximumOnScreen())
	h.press("-")
	assert.Equal(t, 1, h.reg().MaximumOnScreen(), "capacity never drops below one")

	h.press("1", "2")
	assert.Equal(t, 1, h.reg().VisibleCount())
	assert.Equal(t, 1, h.reg().QueuedCount())

	h.press("+")
	assert.Equal(t, 2, h.reg().MaximumOnScreen())
	assert.Equal(t, 2, h.reg().VisibleCount())
	assert.Equal(t, 0, h.reg().QueuedCount())
}

func TestHideNewest(t *testing.T) {
	h := newHarness(t, nil)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isErr)

	h.press("1", "2")
	h.advance(time.Second)
	h.press("x")
	h.advance(time.Second)

	require.Equal(t, 1, h.reg().VisibleCount())
	assert.Equal(t, "Saved", h.reg().Visible()[0].Title())
}

func TestHoverPausesExpiry(t *testing.T) {
	h := newHarness(t, nil)

	h.press("1")
	h.advance(time.Second)
	h.press("h")
	require.NotNil(t, h.m.eng.hovered)
	assert.True(t, h.reg().Visible()[0].Hovered())

	h.advance(10 * time.Second)
	assert.Equal(t, 1, h.reg().VisibleCount())

	h.press("h")
	assert.Nil(t, h.m.eng.hovered)
	h.advance(4 * time.Second)
	assert.Equal(t, 1, h.reg().VisibleCount(), "the full duration restarts on leave")
	h.advance(2 * time.Second)
	assert.Equal(t, 0, h.reg().VisibleCount())
}

func TestResetKeepsTerminalSettings(t *testing.T) {
	h := newHarness(t, nil)

	h.press("1", "2", "p")
	assert.Equal(t, model.PositionBottomLeft, h.reg().Position())

	h.press("r")
	assert.Equal(t, 0, h.reg().Count())
	assert.Equal(t, model.PositionBottomLeft, h.reg().Position())
	assert.Equal(t, cellOffsetX, h.reg().OffsetX())
	assert.Equal(t, 1, h.m.eng.counts[toast.EventReset])
	assert.Empty(t, h.m.eng.canvas.surfaces)
}

func TestMouseHoverAndClose(t *testing.T) {
	h := newHarness(t, nil)

	h.press("1")
	h.advance(time.Second)
	tt := h.reg().Visible()[0]

	// Content origin is the surface position plus the drop shadow.
	inside := model.Point{X: 60, Y: 26}
	h.send(tea.MouseMsg{X: inside.X, Y: inside.Y, Action: tea.MouseActionMotion})
	assert.True(t, tt.Hovered())

	h.send(tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionMotion})
	assert.False(t, tt.Hovered())

	button := tt.Layout().CloseButton
	h.send(tea.MouseMsg{
		X:      54 + button.X,
		Y:      25 + button.Y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, model.PhaseFadingOut, tt.Phase())
}

func TestHelpMode(t *testing.T) {
	h := newHarness(t, nil)

	h.press("?")
	assert.Equal(t, ModeHelp, h.m.mode)
	assert.Contains(t, ansi.Strip(h.m.View()), "Keyboard Shortcuts")

	h.press("1")
	assert.Equal(t, 0, h.reg().Count(), "spawn keys are ignored in help")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeStack, h.m.mode)
}

func TestStatusBar(t *testing.T) {
	h := newHarness(t, nil)
	h.press("1")

	bar := ansi.Strip(h.m.statusBar())
	assert.Contains(t, bar, "1/3 visible")
	assert.Contains(t, bar, "0 queued")
	assert.Contains(t, bar, "bottom-right")
	assert.LessOrEqual(t, ansi.StringWidth(h.m.statusBar()), 100)

	h.send(statusMsg{text: "Copy failed", isErr: true})
	assert.Equal(t, "Copy failed", ansi.Strip(h.m.statusBar()))
	h.send(clearStatusMsg{})
	assert.Empty(t, h.m.statusMsg)
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t, nil)

	cfg := config.DefaultConfig()
	cfg.Stack.Position = "top-left"
	cfg.Stack.MaxVisible = 5
	cfg.Style.Duration = config.Millis(0)
	h.send(configMsg{cfg: cfg})

	assert.Equal(t, model.PositionTopLeft, h.reg().Position())
	assert.Equal(t, 5, h.reg().MaximumOnScreen())

	h.press("1")
	h.advance(time.Minute)
	require.Equal(t, 1, h.reg().VisibleCount(), "duration 0 never expires")
	assert.Equal(t, model.Point{X: -3, Y: -4}, h.reg().Visible()[0].Position())
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, nil)
	h.press("-", "-", "1", "4")
	h.advance(time.Second)

	data, err := yaml.Marshal(h.m.eng.snapshot())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "bottom-right", got["position"])
	assert.Equal(t, 1, got["max_visible"])

	visible := got["visible"].([]any)
	require.Len(t, visible, 1)
	first := visible[0].(map[string]any)
	assert.Equal(t, "Saved", first["title"])
	assert.Equal(t, "success", first["preset"])
	assert.Equal(t, "visible", first["phase"])

	queued := got["queued"].([]any)
	require.Len(t, queued, 1)
	assert.Equal(t, "queued", queued[0].(map[string]any)["phase"])
}

func TestCellSettings(t *testing.T) {
	cfg := config.DefaultConfig().Stack
	cfg.Monitor = "DP-1"
	cfg.Position = "center"

	got := cellSettings(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, model.PositionCenter, got.Position)
	assert.Equal(t, cellOffsetX, got.OffsetX)
	assert.Equal(t, cellOffsetY, got.OffsetY)
	assert.Equal(t, 1, got.Spacing)
	assert.Equal(t, 16, got.TickInterval)
	assert.Nil(t, got.FixedScreen)
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		name string
		line string
		row  string
		x    int
		want string
	}{
		{"inside", "..........", "ab", 3, "...ab....."},
		{"left clip", "....", "abc", -1, "bc.."},
		{"right clip", "....", "abc", 2, "..ab"},
		{"off screen", "....", "abc", 4, "...."},
		{"fully left", "....", "abc", -3, "...."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlay(tt.line, tt.row, tt.x, ansi.StringWidth(tt.line)))
		})
	}
}
