// Command headlessx runs widget scenarios and prints widget charts.
//
//	headlessx run [-j n] [-save dir] [-restore dir] [-format yaml|json] [-trace] [-log-level lvl] scenario.yaml...
//	headlessx chart [-json] [-state s] <widget>
//	headlessx widgets
//	headlessx version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/internal/production"
	"github.com/comalice/headlessx/internal/scenario"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

const usage = `usage:
  headlessx run [-j n] [-save dir] [-restore dir] [-format yaml|json] [-trace]
                [-log-level lvl] scenario.yaml...
  headlessx chart [-json] [-state s] <widget>
  headlessx widgets
  headlessx version
`

var errFailed = errors.New("scenarios failed")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "run":
		err = runScenarios(ctx, args[1:], stdout, stderr)
	case "chart":
		err = chart(args[1:], stdout, stderr)
	case "widgets":
		for _, w := range scenario.Widgets() {
			fmt.Fprintln(stdout, w)
		}
	case "version":
		fmt.Fprintf(stdout, "headlessx %s\n", headlessx.Version)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 2
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "headlessx: %v\n", err)
		return 1
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "headlessx",
		ReportTimestamp: true,
	})
	return slog.New(handler), nil
}

func runScenarios(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("j", runtime.GOMAXPROCS(0), "scenarios to run at once")
	saveDir := fs.String("save", "", "directory receiving the final record of every instance")
	restoreDir := fs.String("restore", "", "directory holding records to resume instances from")
	format := fs.String("format", "yaml", "record format for -save and -restore (yaml, json)")
	trace := fs.Bool("trace", false, "list every committed transition in the reports")
	level := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("run: no scenario files")
	}
	logger, err := newLogger(stderr, *level)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	reports, err := scenario.RunAll(ctx, fs.Args(), scenario.Config{
		Limit:      *limit,
		SaveDir:    *saveDir,
		Format:     *format,
		RestoreDir: *restoreDir,
		Trace:      *trace,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range reports {
		if !r.Passed() {
			failed++
		}
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	logger.Info("run complete", "scenarios", len(reports), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFailed, failed, len(reports))
	}
	return nil
}

func chart(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the chart as JSON instead of DOT")
	current := fs.String("state", "", "state to highlight in DOT output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("chart: want exactly one widget name")
	}
	c, err := scenario.Chart(fs.Arg(0))
	if err != nil {
		return err
	}
	var v production.DefaultVisualizer
	if *asJSON {
		data, err := v.ExportJSON(c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}
	_, err = fmt.Fprint(stdout, v.ExportDOT(c, *current))
	return err
}
