package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/sizer"
	"github.com/jmylchreest/toaststack/internal/textmetrics"
	"github.com/jmylchreest/toaststack/internal/toast"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "bottom-right", cfg.Stack.Position)
	assert.Equal(t, 3, cfg.Stack.MaxVisible)
	assert.Equal(t, 5000, cfg.Style.Duration.Milliseconds())
	assert.False(t, cfg.Sounds.Enabled)

	settings, err := cfg.Stack.Settings(nil)
	require.NoError(t, err)
	assert.Equal(t, toast.DefaultSettings(), settings)

	style, err := cfg.Style.ToastStyle()
	require.NoError(t, err)
	assert.Equal(t, toast.DefaultStyle(), style)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParse_TOML(t *testing.T) {
	doc := `
[stack]
position = "top-left"
max_visible = 5
spacing = 4
tick_interval = "10ms"

[style]
preset = "error-dark"
duration = "2s"
fade_in = "100ms"
max_width = 300

[style.colors]
background = "#101010"
`
	cfg, err := Parse([]byte(doc), false)
	require.NoError(t, err)

	assert.Equal(t, "top-left", cfg.Stack.Position)
	assert.Equal(t, 5, cfg.Stack.MaxVisible)
	assert.Equal(t, 4, cfg.Stack.Spacing)
	assert.Equal(t, 20, cfg.Stack.OffsetX, "unset keys keep defaults")
	assert.Equal(t, 10*time.Millisecond, cfg.Stack.TickInterval.Duration())
	assert.Equal(t, 2*time.Second, cfg.Style.Duration.Duration())
	assert.Equal(t, 250, cfg.Style.FadeOut.Milliseconds())

	style, err := cfg.Style.ToastStyle()
	require.NoError(t, err)
	assert.Equal(t, model.PresetErrorDark, style.Preset)
	assert.Equal(t, model.BuiltinIcon(model.IconError), style.Icon)
	assert.Equal(t, toast.ErrorAccentColor, style.IconColor)
	assert.Equal(t, model.MustParseColor("#101010"), style.BackgroundColor)
	assert.Equal(t, toast.DarkPalette.Title, style.TitleColor)
	assert.Equal(t, 2000, style.Duration)
	assert.Equal(t, 100, style.FadeInDuration)
	assert.Equal(t, 300, style.MaximumSize.Width)
	assert.Equal(t, sizer.MaxDimension, style.MaximumSize.Height)
}

func TestParse_YAML(t *testing.T) {
	doc := `
stack:
  position: center
  offset_x: 7
style:
  duration: 0
  close_button_alignment: middle
sounds:
  enabled: true
  volume: 40
`
	cfg, err := Parse([]byte(doc), true)
	require.NoError(t, err)

	assert.Equal(t, "center", cfg.Stack.Position)
	assert.Equal(t, 7, cfg.Stack.OffsetX)
	assert.Equal(t, 0, cfg.Style.Duration.Milliseconds())
	assert.True(t, cfg.Sounds.Enabled)
	assert.Equal(t, 40, cfg.Sounds.Volume)

	style, err := cfg.Style.ToastStyle()
	require.NoError(t, err)
	assert.Equal(t, model.ButtonAlignmentMiddle, style.CloseButtonAlignment)
	assert.Equal(t, 0, style.Duration)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"syntax", "[stack\n", ""},
		{"position", "[stack]\nposition = \"sideways\"", "stack.position"},
		{"max visible", "[stack]\nmax_visible = 51", "stack.max_visible"},
		{"negative spacing", "[stack]\nspacing = -1", "stack.spacing"},
		{"tick interval", "[stack]\ntick_interval = \"0s\"", "stack.tick_interval"},
		{"preset", "[style]\npreset = \"shiny\"", "style.preset"},
		{"alignment", "[style]\nclose_button_alignment = \"left\"", "style.close_button_alignment"},
		{"negative duration", "[style]\nduration = \"-1s\"", "style.duration"},
		{"min over max", "[style]\nmin_width = 400\nmax_width = 300", "style.min_width"},
		{"colour", "[style.colors]\ntitle = \"red\"", "style.colors.title"},
		{"volume", "[sounds]\nvolume = 101", "sounds.volume"},
		{"color scheme", "[display]\ncolor_scheme = \"sepia\"", "display.color_scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), false)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoad_InvalidFileReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toaststack.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stack]\nspacing = -3\n"), 0o644))

	_, err := Load(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, path, verr.Path)
	assert.Contains(t, err.Error(), path+": stack.spacing: ")
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"toaststack.toml", "toaststack.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := DefaultConfig()
			cfg.Stack.Position = "top-middle"
			cfg.Stack.Monitor = "DP-1"
			cfg.Style.Preset = "warning"
			cfg.Style.FadeIn = Millis(80)
			cfg.Sounds.Warning = "~/chimes/warn.wav"
			require.NoError(t, cfg.Save(path))

			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"250", 250 * time.Millisecond, false},
		{"250ms", 250 * time.Millisecond, false},
		{"5s", 5 * time.Second, false},
		{"1m", time.Minute, false},
		{"0", 0, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestStackSettings_Monitor(t *testing.T) {
	left := screen.Region{Name: "DP-1", Bounds: model.Rect{Width: 1920, Height: 1080}, Primary: true}
	right := screen.Region{Name: "HDMI-1", Bounds: model.Rect{X: 1920, Width: 1280, Height: 1024}}
	screens := screen.NewStatic(left, right)

	cfg := DefaultConfig().Stack
	cfg.Monitor = "HDMI-1"
	settings, err := cfg.Settings(screens)
	require.NoError(t, err)
	require.NotNil(t, settings.FixedScreen)
	assert.Equal(t, right, *settings.FixedScreen)

	cfg.Monitor = "VGA-9"
	_, err = cfg.Settings(screens)
	assert.Error(t, err)

	cfg.Monitor = "DP-1"
	_, err = cfg.Settings(nil)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	clock := eventloop.NewVirtual()
	screens := screen.Single(800, 600)
	reg := toast.NewRegistry(clock, screens, textmetrics.CellMeasurer{})

	cfg := DefaultConfig()
	cfg.Stack.Position = "top-left"
	cfg.Stack.MaxVisible = 1
	cfg.Stack.TickInterval = Millis(25)
	require.NoError(t, cfg.Apply(reg, screens))

	got := reg.Settings()
	assert.Equal(t, model.PositionTopLeft, got.Position)
	assert.Equal(t, 1, got.MaximumOnScreen)
	assert.Equal(t, 25, got.TickInterval)

	cfg.Stack.Position = "nowhere"
	assert.Error(t, cfg.Apply(reg, screens))
	assert.Equal(t, model.PositionTopLeft, reg.Settings().Position)
}

func TestSoundFor(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	s := SoundsConfig{
		Default: "/usr/share/sounds/ding.wav",
		Error:   "~/sounds/error.wav",
	}
	assert.Equal(t, filepath.Join(home, "sounds/error.wav"), s.SoundFor(model.PresetErrorDark))
	assert.Equal(t, "/usr/share/sounds/ding.wav", s.SoundFor(model.PresetSuccess))
	assert.Equal(t, "/usr/share/sounds/ding.wav", s.SoundFor(model.Preset(0)))
}

func TestWatcher_Reload(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "toaststack.toml")
	cfg := DefaultConfig()
	cfg.Stack.Spacing = 1
	require.NoError(t, cfg.Save(path))

	w := NewWatcher(path, nil)
	w.SetDebounce(10 * time.Millisecond)

	reloaded := make(chan *Config, 16)
	failed := make(chan error, 16)
	w.SetReloadCallback(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	w.SetErrorCallback(func(err error) {
		select {
		case failed <- err:
		default:
		}
	})

	initial, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()
	assert.Same(t, initial, w.Current())

	// Unrelated files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))

	cfg.Stack.Spacing = 9
	require.NoError(t, cfg.Save(path))
	select {
	case got := <-reloaded:
		assert.Equal(t, 9, got.Stack.Spacing)
	case err := <-failed:
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, 9, w.Current().Stack.Spacing)

	cfg.Stack.Spacing = -9
	require.NoError(t, cfg.Save(path))
	select {
	case err := <-failed:
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
	assert.Equal(t, 9, w.Current().Stack.Spacing, "invalid files keep the previous config")

	w.Stop()
	w.Stop()
}
