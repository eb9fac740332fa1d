// Package tui provides the BubbleTea-based terminal host: toasts are laid out
// in terminal cells and painted over the screen.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeStack Mode = iota
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	logger *slog.Logger

	eng *engine

	// Current mode
	mode Mode

	help help.Model
	keys KeyMap

	// State
	dark   bool
	width  int
	height int
	ready  bool

	// Status message
	statusMsg string
	statusErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used by the registry. It must not write to
// the terminal the TUI is drawing on.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a new TUI model.
func New(cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := Model{
		cfg:    cfg,
		logger: slog.Default(),
		mode:   ModeStack,
		help:   help.New(),
		keys:   DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.eng = newEngine(cfg, m.logger)
	return m
}

// Subscribe registers an observer for the toasts shown in the TUI.
func (m Model) Subscribe(o toast.Observer) {
	m.eng.reg.Subscribe(o)
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nextFrame()
}

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type configMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.eng.resize(m.screenSize())
		return m, nil

	case frameMsg:
		m.eng.advance(time.Time(msg))
		return m, nextFrame()

	case configMsg:
		m.cfg = msg.cfg
		m.eng.configure(msg.cfg)
		return m, status("Config reloaded", false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied to clipboard", false)
	}

	return m, nil
}

// screenSize is the area toasts are stacked in: the terminal less the
// status line, unless the config fixes a size.
func (m Model) screenSize() (int, int) {
	w, h := m.width, m.height-1
	if m.cfg.TUI.Width > 0 {
		w = min(m.cfg.TUI.Width, m.width)
	}
	if m.cfg.TUI.Height > 0 {
		h = min(m.cfg.TUI.Height, m.height-1)
	}
	return max(w, 0), max(h, 0)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeStack
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		if msg.Type == tea.KeyEsc {
			m.mode = ModeStack
		}
		return m, nil
	}

	return m.handleStackKey(msg)
}

// handleStackKey handles keys while the stack is shown.
func (m Model) handleStackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Success):
		return m.spawn(model.PresetSuccess)
	case key.Matches(msg, m.keys.Warning):
		return m.spawn(model.PresetWarning)
	case key.Matches(msg, m.keys.Error):
		return m.spawn(model.PresetError)
	case key.Matches(msg, m.keys.Information):
		return m.spawn(model.PresetInformation)
	case key.Matches(msg, m.keys.Plain):
		return m.spawn(0)

	case key.Matches(msg, m.keys.ToggleDark):
		m.dark = !m.dark
		if m.dark {
			return m, status("Dark presets", false)
		}
		return m, status("Light presets", false)

	case key.Matches(msg, m.keys.HideNewest):
		t := m.eng.newest()
		if t == nil {
			return m, status("Nothing to hide", true)
		}
		t.Hide()
		return m, nil

	case key.Matches(msg, m.keys.Hover):
		if m.eng.hovered != nil {
			m.eng.hover(nil)
			return m, nil
		}
		t := m.eng.newest()
		if t == nil {
			return m, status("Nothing to hover", true)
		}
		m.eng.hover(t)
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.eng.reset()
		return m, status("Stack reset", false)

	case key.Matches(msg, m.keys.Position):
		p := m.eng.cyclePosition()
		return m, status("Position "+p.String(), false)

	case key.Matches(msg, m.keys.MoreVisible):
		n := m.eng.setMaximum(m.eng.settings.MaximumOnScreen + 1)
		return m, status(fmt.Sprintf("Up to %d visible", n), false)

	case key.Matches(msg, m.keys.FewerVisible):
		n := m.eng.setMaximum(m.eng.settings.MaximumOnScreen - 1)
		return m, status(fmt.Sprintf("Up to %d visible", n), false)

	case key.Matches(msg, m.keys.Copy):
		data, err := yaml.Marshal(m.eng.snapshot())
		if err != nil {
			return m, status("Failed to marshal YAML: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))
	}

	return m, nil
}

func (m Model) spawn(p model.Preset) (tea.Model, tea.Cmd) {
	if p.Valid() {
		p = p.WithDark(m.dark)
	}
	t := m.eng.spawn(p)
	if t.Phase() == model.PhaseQueued {
		return m, status(fmt.Sprintf("Queued %q", t.Title()), false)
	}
	return m, nil
}

// handleMouse hovers the toast under the pointer. Clicking a close button
// hides its toast.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeStack {
		return m, nil
	}
	p := model.Point{X: msg.X, Y: msg.Y}
	t := m.eng.toastAt(p)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.eng.hover(t)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || t == nil || !t.ShowsCloseButton() {
			return m, nil
		}
		origin := m.eng.canvas.at(p).bounds().Origin()
		button := t.Layout().CloseButton
		if button.Contains(model.Point{X: p.X - origin.X, Y: p.Y - origin.Y}) {
			t.Hide()
		}
	}
	return m, nil
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	command := m.cfg.TUI.ClipboardCommand
	return func() tea.Msg {
		return copyResultMsg{err: newClipboard(command).copy(context.Background(), text)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.viewHelp()
	default:
		w, h := m.screenSize()
		return m.eng.canvas.paint(w, h) + "\n" + m.statusBar()
	}
}

func (m Model) statusBar() string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return ansi.Truncate(statusStyle.Render(m.statusMsg), m.width, "…")
	}

	reg := m.eng.reg
	info := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render(fmt.Sprintf(
		"%d/%d visible  %d queued  %s",
		reg.VisibleCount(), reg.MaximumOnScreen(), reg.QueuedCount(), reg.Position(),
	))
	if !m.cfg.TUI.ShowHelp {
		return ansi.Truncate(info, m.width, "…")
	}

	h := m.help
	h.Width = max(m.width-lipgloss.Width(info)-2, 0)
	return ansi.Truncate(info+"  "+h.View(m.keys), m.width, "…")
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	h := m.help
	h.ShowAll = true

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += h.View(m.keys) + "\n\n"
	s += lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Move the mouse over a toast to hover it, click × to close it. Press ? or esc to return")
	return s
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config    *config.Config
	Logger    *slog.Logger
	Observers []toast.Observer
	// Watcher, if set, is started with Config and its reloads are applied live.
	Watcher *config.Watcher
	// OnReload is called from the watcher goroutine after each reload.
	OnReload func(cfg *config.Config)
}

// Run starts the TUI with the given options and blocks until it exits.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := New(cfg, WithLogger(opts.Logger))
	for _, o := range opts.Observers {
		m.Subscribe(o)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if opts.Watcher != nil {
		opts.Watcher.SetReloadCallback(func(cfg *config.Config) {
			if opts.OnReload != nil {
				opts.OnReload(cfg)
			}
			p.Send(configMsg{cfg: cfg})
		})
		opts.Watcher.SetErrorCallback(func(err error) {
			p.Send(statusMsg{text: "Config reload failed: " + err.Error(), isErr: true})
		})
		if err := opts.Watcher.Start(ctx, cfg); err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		defer opts.Watcher.Stop()
	}

	_, err := p.Run()
	return err
}
