package audio

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/textmetrics"
	"github.com/jmylchreest/toaststack/internal/toast"
)

type fakeBackend struct {
	mu          sync.Mutex
	played      []string
	preloaded   []string
	invalidated []string
	volume      float64
	closed      bool
}

func (f *fakeBackend) Play(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, path)
	return nil
}

func (f *fakeBackend) Preload(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preloaded = append(f.preloaded, path)
	return nil
}

func (f *fakeBackend) InvalidateCache(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, path)
}

func (f *fakeBackend) SetVolume(v float64) { f.volume = v }
func (f *fakeBackend) Close()              { f.closed = true }

func (f *fakeBackend) invalidations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}

func TestChimes_PlaysPerPreset(t *testing.T) {
	clock := eventloop.NewVirtual()
	reg := toast.NewRegistry(clock, screen.Single(200, 60), textmetrics.CellMeasurer{})

	backend := &fakeBackend{}
	chimes := NewChimes(config.SoundsConfig{
		Enabled: true,
		Volume:  50,
		Default: "/sounds/ding.wav",
		Error:   "/sounds/error.ogg",
	}, backend, nil)
	reg.Subscribe(chimes)
	assert.InDelta(t, 0.5, backend.volume, 1e-9)

	plain := toast.New(reg)
	plain.SetTitle("plain")
	failed := toast.New(reg)
	failed.SetTitle("failed")
	failed.ApplyPreset(model.PresetErrorDark)

	plain.Show()
	failed.Show()
	plain.Hide()
	clock.Advance(1000)

	assert.Equal(t, []string{"/sounds/ding.wav", "/sounds/error.ogg"}, backend.played)
}

func TestChimes_Disabled(t *testing.T) {
	clock := eventloop.NewVirtual()
	reg := toast.NewRegistry(clock, screen.Single(200, 60), textmetrics.CellMeasurer{})

	backend := &fakeBackend{}
	chimes := NewChimes(config.SoundsConfig{Default: "/sounds/ding.wav"}, backend, nil)
	reg.Subscribe(chimes)

	tt := toast.New(reg)
	tt.Show()
	assert.Empty(t, backend.played)

	chimes.UpdateConfig(config.SoundsConfig{Enabled: true, Volume: 100, Default: "/sounds/ding.wav"})
	tt2 := toast.New(reg)
	tt2.Show()
	assert.Equal(t, []string{"/sounds/ding.wav"}, backend.played)
	assert.InDelta(t, 1.0, backend.volume, 1e-9)
}

func TestChimes_StartPreloadsAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	ding := filepath.Join(dir, "ding.wav")
	warn := filepath.Join(dir, "warn.wav")

	backend := &fakeBackend{}
	chimes := NewChimes(config.SoundsConfig{
		Enabled: true,
		Default: ding,
		Warning: warn,
		Success: ding,
	}, backend, nil)

	require.NoError(t, chimes.Start(context.Background()))
	assert.ElementsMatch(t, []string{ding, warn}, backend.preloaded)
	assert.ElementsMatch(t, []string{ding, warn}, chimes.watcher.Watched())

	chimes.Stop()
	assert.True(t, backend.closed)
	assert.False(t, chimes.watcher.IsRunning())
}

func TestWatcher_InvalidatesChangedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	ding := filepath.Join(dir, "ding.wav")
	other := filepath.Join(dir, "other.wav")
	require.NoError(t, os.WriteFile(ding, []byte("v1"), 0o644))

	backend := &fakeBackend{}
	w := NewWatcher(backend, nil)
	w.Watch(ding)
	w.Watch(ding)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(ding, []byte("v2"), 0o644))

	assert.Eventually(t, func() bool {
		return len(backend.invalidations()) > 0
	}, 5*time.Second, 10*time.Millisecond)
	for _, p := range backend.invalidations() {
		assert.Equal(t, ding, p)
	}

	w.Unwatch(ding)
	assert.Empty(t, w.Watched())
}

func TestPlayer_LoadErrors(t *testing.T) {
	p := NewPlayer(nil)
	dir := t.TempDir()

	flac := filepath.Join(dir, "ding.flac")
	require.NoError(t, os.WriteFile(flac, []byte("fLaC"), 0o644))
	assert.ErrorIs(t, p.Preload(flac), ErrUnsupportedFormat)

	assert.ErrorIs(t, p.Play(filepath.Join(dir, "missing.wav")), os.ErrNotExist)

	assert.NoError(t, p.Play(""))
	assert.NoError(t, p.Preload(""))
}

func TestPlayer_Volume(t *testing.T) {
	p := NewPlayer(nil)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(1.5)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
	p.SetVolume(0.25)
	assert.Equal(t, 0.25, p.Volume())

	assert.InDelta(t, -1.0, volumeToExponent(0.5), 1e-9)
	assert.InDelta(t, -2.0, volumeToExponent(0.25), 1e-9)
	assert.Equal(t, 0.0, volumeToExponent(1))
	assert.Equal(t, -10.0, volumeToExponent(0))
}
