// Package main is the entry point for toastdemo, which plays a toast
// scenario as real layer-shell popups.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmylchreest/toaststack/internal/adapter/input"
	"github.com/jmylchreest/toaststack/internal/audio"
	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/display"
	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/metrics"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/simulate"
	"github.com/jmylchreest/toaststack/internal/theme"
	"github.com/jmylchreest/toaststack/internal/toast"
)

const (
	appID   = "io.github.jmylchreest.toastdemo"
	appName = "toastdemo"

	// idleCheckInterval is how often the demo checks whether it has finished.
	idleCheckInterval = 500
)

var (
	// Build-time variables
	version = "dev"
)

type options struct {
	configPath  string
	themeName   string
	scenario    string
	metricsAddr string
	hold        bool
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	flag.StringVar(&opts.themeName, "theme", "", "Theme to use instead of the configured one")
	flag.StringVar(&opts.scenario, "scenario", "", "Scenario file to play, - for stdin (default: built-in demo)")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9101")
	flag.BoolVar(&opts.hold, "hold", false, "Keep running after the scenario has finished")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	listThemes := flag.Bool("list-themes", false, "List available themes and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	if *listThemes {
		infos, err := theme.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, info := range infos {
			if info.Bundled() {
				fmt.Printf("%s (bundled)\n", info.Name)
			} else {
				fmt.Printf("%s %s\n", info.Name, info.Path)
			}
		}
		os.Exit(0)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		logger.Error("toastdemo failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.themeName != "" {
		cfg.Display.Theme = opts.themeName
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc, err := input.NewAdapter(opts.scenario).Import(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	logger.Info("starting toastdemo", "version", version, "scenario", sc.Name, "steps", len(sc.Steps))

	d := &demo{
		opts:   opts,
		cfg:    cfg,
		path:   path,
		sc:     sc,
		logger: logger,
	}

	app := adw.NewApplication(appID, 0)
	app.ConnectActivate(func() { d.activate(ctx, app) })
	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		d.shutdown()
	})

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			glib.IdleAdd(func() {
				app.Quit()
			})
		case <-ctx.Done():
		}
	}()

	if status := app.Run(os.Args[:1]); status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}
	return nil
}

// demo owns everything created when the application activates. All fields
// are touched on the GTK main loop only.
type demo struct {
	opts   options
	cfg    *config.Config
	path   string
	sc     *simulate.Scenario
	logger *slog.Logger

	loader        *theme.Loader
	manager       *display.Manager
	reg           *toast.Registry
	player        *simulate.Player
	chimes        *audio.Chimes
	configWatcher *config.Watcher
	metricsServer *http.Server
	steps         []eventloop.Timer
	idle          eventloop.Timer
	keepAlive     *gtk.Window
}

func (d *demo) activate(ctx context.Context, app *adw.Application) {
	logger := d.logger

	d.loader = theme.NewLoader(logger)
	if err := d.loader.LoadTheme(d.cfg.Display.Theme); err != nil {
		logger.Warn("failed to load theme, using default", "theme", d.cfg.Display.Theme, "error", err)
	}
	d.loader.Apply(nil)
	if d.cfg.Display.HotReload {
		d.loader.StartHotReload(ctx)
	}

	monitors, err := display.NewMonitorProvider(logger)
	if err != nil {
		logger.Error("failed to query monitors", "error", err)
		app.Quit()
		return
	}

	d.manager = display.NewManager(monitors,
		display.WithApplication(&app.Application),
		display.WithThemeLoader(d.loader),
		display.WithNamespace(d.cfg.Display.Namespace),
		display.WithLogger(logger),
	)
	d.reg = toast.NewRegistry(display.GlibScheduler{}, monitors, display.NewPangoMeasurer(),
		toast.WithLogger(logger),
		toast.WithSurfaceFactory(d.manager),
	)
	if err := d.cfg.Apply(d.reg, monitors); err != nil {
		logger.Warn("invalid stack settings, using defaults", "error", err)
	}
	d.reg.Subscribe(toast.ObserverFunc(func(ev toast.Event, t *toast.Toast) {
		logger.Debug("toast event", "event", ev, "toast", d.player.Name(t), "phase", t.Phase())
	}))

	d.chimes = audio.NewChimes(d.cfg.Sounds, nil, logger)
	if err := d.chimes.Start(ctx); err != nil {
		logger.Warn("failed to start chimes", "error", err)
	}
	d.reg.Subscribe(d.chimes)

	if d.opts.metricsAddr != "" {
		d.serveMetrics(logger)
	}

	d.player = simulate.NewPlayer(d.reg, d.baseStyle())
	d.player.SetPresetFilter(func(p model.Preset) model.Preset {
		return display.PresetFor(p, d.cfg.Display.ColorScheme)
	})
	d.steps = d.player.Schedule(display.GlibScheduler{}, d.sc)

	d.watchConfig(ctx, monitors)

	// GTK apps quit when their last window closes, and toasts come and go.
	d.keepAlive = gtk.NewWindow()
	d.keepAlive.SetApplication(&app.Application)
	d.keepAlive.SetDefaultSize(1, 1)
	d.keepAlive.SetDecorated(false)
	d.keepAlive.SetVisible(false)

	if !d.opts.hold {
		d.quitWhenFinished(app)
	}

	logger.Info("toastdemo ready", "theme", d.loader.CurrentTheme(), "position", d.reg.Position())
}

func (d *demo) baseStyle() toast.Style {
	s, err := d.cfg.Style.ToastStyle()
	if err != nil {
		d.logger.Warn("invalid toast style, using defaults", "error", err)
		return toast.DefaultStyle()
	}
	return s
}

func (d *demo) quitWhenFinished(app *adw.Application) {
	d.idle = display.GlibScheduler{}.AfterFunc(idleCheckInterval, func() {
		if !d.finished() {
			d.quitWhenFinished(app)
			return
		}
		d.logger.Info("scenario finished")
		app.Quit()
	})
}

// finished reports whether every scenario step has run and the stack is empty.
func (d *demo) finished() bool {
	for _, t := range d.steps {
		if t.Active() {
			return false
		}
	}
	return d.reg.Count() == 0
}

func (d *demo) serveMetrics(logger *slog.Logger) {
	registry := prometheus.NewRegistry()
	m, err := metrics.NewToastMetrics(registry, d.reg)
	if err != nil {
		logger.Warn("failed to create metrics", "error", err)
		return
	}
	d.reg.Subscribe(m)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	d.metricsServer = &http.Server{
		Addr:              d.opts.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", "addr", d.opts.metricsAddr)
		if err := d.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
}

// watchConfig applies config file changes on the main loop.
func (d *demo) watchConfig(ctx context.Context, monitors *display.MonitorProvider) {
	logger := d.logger
	d.configWatcher = config.NewWatcher(d.path, logger)
	d.configWatcher.SetReloadCallback(func(newConfig *config.Config) {
		glib.IdleAdd(func() {
			if d.opts.themeName != "" {
				newConfig.Display.Theme = d.opts.themeName
			}
			if newConfig.Display.Theme != d.cfg.Display.Theme {
				if err := d.loader.LoadTheme(newConfig.Display.Theme); err != nil {
					logger.Warn("failed to load new theme", "theme", newConfig.Display.Theme, "error", err)
				} else {
					d.loader.Apply(nil)
				}
			}
			monitors.HandleMonitorChange()
			if err := newConfig.Apply(d.reg, monitors); err != nil {
				logger.Warn("failed to apply new stack settings", "error", err)
			}
			d.cfg = newConfig
			d.player.SetStyle(d.baseStyle())
			d.chimes.UpdateConfig(newConfig.Sounds)
			logger.Info("config reloaded")
		})
	})
	d.configWatcher.SetErrorCallback(func(err error) {
		logger.Warn("config reload failed", "error", err)
	})
	if err := d.configWatcher.Start(ctx, d.cfg); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	}
}

func (d *demo) shutdown() {
	for _, t := range d.steps {
		t.Stop()
	}
	if d.idle != nil {
		d.idle.Stop()
	}
	if d.configWatcher != nil {
		d.configWatcher.Stop()
	}
	if d.loader != nil {
		d.loader.StopHotReload()
	}
	if d.manager != nil {
		d.manager.CloseAll()
	}
	if d.chimes != nil {
		d.chimes.Stop()
	}
	if d.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = d.metricsServer.Shutdown(ctx)
	}
}
