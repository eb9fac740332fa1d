package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toaststack/internal/adapter/input"
	"github.com/jmylchreest/toaststack/internal/adapter/output"
	"github.com/jmylchreest/toaststack/internal/metrics"
	"github.com/jmylchreest/toaststack/internal/simulate"
	"github.com/jmylchreest/toaststack/internal/textmetrics"
)

var simulateOpts struct {
	// Input options
	source      string
	limit       time.Duration
	realtime    bool
	fontMetrics bool

	// Output options
	format     string
	template   string
	separator  string
	noFrames   bool
	noTime     bool
	index      bool
	compact    bool
	nameMaxLen int
	metrics    bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario]",
	Short: "Play a toast scenario and print its timeline",
	Long: `Play a toast scenario on a virtual clock and print the timeline of
stack frames and lifecycle events.

The scenario is read from a YAML or JSON file, from stdin with "-", or the
built-in demo is used when none is given. Stack and style defaults come
from the configuration file.

Examples:
  # Play the built-in demo
  toastctl simulate

  # Play a scenario file and print only the events
  toastctl simulate burst.yaml -o events

  # Custom event template
  toastctl simulate burst.yaml -o events --template '{{.At}}ms {{.Toast}} {{.Event}}'

  # Watch a scenario unfold in real time
  toastctl simulate burst.yaml --realtime -o events

  # Pipe a scenario in and emit JSON
  cat burst.json | toastctl simulate - -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().DurationVar(&simulateOpts.limit, "limit", time.Duration(simulate.DefaultLimit)*time.Millisecond,
		"Stop after this much virtual time")
	simulateCmd.Flags().BoolVar(&simulateOpts.realtime, "realtime", false,
		"Play the scenario in wall clock time instead of on a virtual clock")
	simulateCmd.Flags().BoolVar(&simulateOpts.fontMetrics, "font-metrics", false,
		"Measure text with the Go fonts instead of a fixed character grid")

	formats := make([]string, 0, len(output.FormatTypes()))
	for _, f := range output.FormatTypes() {
		formats = append(formats, string(f))
	}
	simulateCmd.Flags().StringVarP(&simulateOpts.format, "format", "o", string(output.FormatPlain),
		"Output format ("+strings.Join(formats, ", ")+")")
	simulateCmd.Flags().StringVar(&simulateOpts.template, "template", "",
		"Go template for each line of the events format")
	simulateCmd.Flags().StringVar(&simulateOpts.separator, "separator", " | ",
		"Field separator for the events format")
	simulateCmd.Flags().BoolVar(&simulateOpts.noFrames, "no-frames", false,
		"Omit stack frames from plain output")
	simulateCmd.Flags().BoolVar(&simulateOpts.noTime, "no-time", false,
		"Omit virtual timestamps")
	simulateCmd.Flags().BoolVar(&simulateOpts.index, "index", false,
		"Prefix lines with a 1-based index")
	simulateCmd.Flags().BoolVar(&simulateOpts.compact, "compact", false,
		"Unindented JSON")
	simulateCmd.Flags().IntVar(&simulateOpts.nameMaxLen, "name-max-len", 0,
		"Truncate toast names to this length (0 = unlimited)")
	simulateCmd.Flags().BoolVar(&simulateOpts.metrics, "metrics", false,
		"Print lifecycle counters to stderr after the run")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	source := simulateOpts.source
	if len(args) > 0 {
		source = args[0]
	}
	adapter := input.NewAdapter(source)

	sc, err := adapter.Import(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	logger.Debug("loaded scenario", "source", adapter.Name(), "name", sc.Name, "steps", len(sc.Steps))

	opts := output.DefaultFormatterOptions()
	opts.Template = simulateOpts.template
	opts.Separator = simulateOpts.separator
	opts.ShowFrames = !simulateOpts.noFrames
	opts.ShowTime = !simulateOpts.noTime
	opts.ShowIndex = simulateOpts.index
	opts.Compact = simulateOpts.compact
	opts.NameMaxLen = simulateOpts.nameMaxLen

	formatter, err := output.NewFormatter(output.FormatType(simulateOpts.format), opts)
	if err != nil {
		return err
	}

	runOpts := []simulate.Option{
		simulate.WithLogger(logger),
		simulate.WithConfig(cfg),
		simulate.WithLimit(int(simulateOpts.limit / time.Millisecond)),
	}

	if simulateOpts.fontMetrics {
		fm, err := textmetrics.NewFontMeasurer(0)
		if err != nil {
			return err
		}
		defer func() { _ = fm.Close() }()
		runOpts = append(runOpts, simulate.WithMeasurer(fm))
	}

	var registry *prometheus.Registry
	if simulateOpts.metrics {
		registry = prometheus.NewRegistry()
		m, err := metrics.NewToastMetrics(registry, nil)
		if err != nil {
			return err
		}
		runOpts = append(runOpts, simulate.WithObserver(m))
	}

	run := simulate.Run
	if simulateOpts.realtime {
		run = simulate.Live
	}
	tl, err := run(ctx, sc, runOpts...)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if err := formatter.Format(cmd.OutOrStdout(), tl); err != nil {
		return err
	}

	if registry != nil {
		return writeMetrics(cmd.ErrOrStderr(), registry)
	}
	return nil
}
