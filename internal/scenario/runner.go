package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/extensibility"
	"github.com/comalice/headlessx/internal/primitives"
	"github.com/comalice/headlessx/internal/production"
)

// Config tunes a run.
type Config struct {
	// Limit bounds the scenarios running at once; <= 0 means no limit.
	Limit int
	// SaveDir, when set, receives the record of every instance after each
	// committed transition.
	SaveDir string
	// Format selects the record encoding for SaveDir and RestoreDir:
	// "yaml" (the default) or "json".
	Format string
	// RestoreDir, when set, holds records to resume instances from before
	// their events are replayed. A missing record fails the scenario.
	RestoreDir string
	// Trace collects every committed transition into the report.
	Trace  bool
	Logger *slog.Logger
}

// Report is the outcome of one scenario.
type Report struct {
	File        string                    `yaml:"file"`
	Widget      string                    `yaml:"widget"`
	ID          string                    `yaml:"id,omitempty"`
	State       string                    `yaml:"state,omitempty"`
	Events      int                       `yaml:"events"`
	Computed    map[string]any            `yaml:"computed,omitempty"`
	Parts       map[string]map[string]any `yaml:"parts,omitempty"`
	Transitions []string                  `yaml:"transitions,omitempty"`
	Failures    []string                  `yaml:"failures,omitempty"`
	Error       string                    `yaml:"error,omitempty"`
}

// Passed reports whether the scenario ran and every assertion held.
func (r Report) Passed() bool {
	return r.Error == "" && len(r.Failures) == 0
}

// traceBuffer bounds the transitions held between the machine and the
// collector; overflow is reported, never blocks the machine.
const traceBuffer = 256

// env is a Config with its persisters opened.
type env struct {
	logger  *slog.Logger
	save    core.Persister
	restore core.Persister
	trace   bool
}

func (cfg Config) open() (env, error) {
	e := env{logger: cfg.Logger, trace: cfg.Trace}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.SaveDir != "" {
		p, err := production.NewPersister(cfg.Format, cfg.SaveDir)
		if err != nil {
			return env{}, fmt.Errorf("save records: %w", err)
		}
		e.save = p
	}
	if cfg.RestoreDir != "" {
		p, err := production.NewPersister(cfg.Format, cfg.RestoreDir)
		if err != nil {
			return env{}, fmt.Errorf("restore records: %w", err)
		}
		e.restore = p
	}
	return e, nil
}

// RunAll runs the scenario files concurrently and returns their reports in
// input order. Each instance is driven by exactly one goroutine. Scenario
// failures are recorded in the reports; the error is non-nil only when the
// configuration is unusable or ctx ends the run early.
func RunAll(ctx context.Context, paths []string, cfg Config) ([]Report, error) {
	e, err := cfg.open()
	if err != nil {
		return nil, err
	}
	reports := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Limit > 0 {
		g.SetLimit(cfg.Limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Load(path)
			if err != nil {
				reports[i] = Report{File: path, Error: err.Error()}
				return nil
			}
			reports[i] = e.run(ctx, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, fmt.Errorf("run scenarios: %w", err)
	}
	return reports, nil
}

// Run executes one scenario.
func Run(ctx context.Context, f *File, cfg Config) Report {
	e, err := cfg.open()
	if err != nil {
		return Report{File: f.Path, Widget: f.Widget, ID: f.ID, Error: err.Error()}
	}
	return e.run(ctx, f)
}

func (e env) run(ctx context.Context, f *File) Report {
	r := Report{File: f.Path, Widget: f.Widget, ID: f.ID}
	logger := e.logger.With("file", f.Path, "widget", f.Widget)
	if err := e.play(ctx, f, logger, &r); err != nil {
		logger.Error("scenario failed", "error", err)
		r.Error = err.Error()
	}
	return r
}

func (e env) play(ctx context.Context, f *File, logger *slog.Logger, r *Report) error {
	d, ok := drivers[f.Widget]
	if !ok {
		return fmt.Errorf("unknown widget %q (have %s)", f.Widget, strings.Join(Widgets(), ", "))
	}
	opts := []core.Option{core.WithLogger(logger)}
	if e.save != nil {
		opts = append(opts, core.WithPersister(e.save))
	}
	if e.trace {
		pub := production.NewChannelPublisher(traceBuffer)
		wait := production.Collect(pub)
		opts = append(opts, core.WithPublisher(pub))
		defer func() {
			_ = pub.Close()
			for _, t := range wait() {
				r.Transitions = append(r.Transitions, t.String())
			}
			if n := pub.Dropped(); n > 0 {
				r.Transitions = append(r.Transitions, fmt.Sprintf("(%d more dropped)", n))
			}
		}()
	}
	inst, err := d.build(f.options(), opts...)
	if err != nil {
		return err
	}
	if e.restore != nil {
		if err := inst.Restore(ctx, e.restore); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	if err := inst.Start(); err != nil {
		return err
	}

	var cur Step
	outcome := func(next primitives.Dispatch) primitives.Dispatch {
		return func(evt primitives.Event) error {
			i := r.Events
			r.Events++
			err := next(evt)
			switch {
			case cur.Reject && err == nil:
				return fmt.Errorf("event %d (%s) was accepted, want rejection", i, evt.Type)
			case cur.Reject:
				var perr *primitives.Error
				if !errors.As(err, &perr) {
					return fmt.Errorf("event %d (%s): %w", i, evt.Type, err)
				}
				return nil
			case err != nil:
				return fmt.Errorf("event %d (%s): %w", i, evt.Type, err)
			}
			return nil
		}
	}
	dispatch := extensibility.Chain(inst.Send, outcome, extensibility.Tracing(logger))
	for _, step := range f.Events {
		cur = step
		src, stop := step.source()
		err := extensibility.Pump(ctx, src, dispatch)
		stop()
		if err != nil {
			return err
		}
	}

	rec := inst.Record()
	r.ID = rec.ID
	r.State = rec.State
	r.Computed = rec.Computed
	if len(f.Parts) > 0 {
		r.Parts = make(map[string]map[string]any, len(f.Parts))
		for _, spec := range f.Parts {
			name, arg, _ := strings.Cut(spec, ":")
			attrs, err := inst.Part(name, arg)
			if err != nil {
				return err
			}
			r.Parts[spec] = attrs
		}
	}

	values, err := assertionValues(rec, r.Parts)
	if err != nil {
		return err
	}
	for _, expr := range f.Expect {
		ok, err := extensibility.Evaluate(expr, values)
		if err != nil {
			return err
		}
		if !ok {
			got, _ := extensibility.Lookup(values, strings.Fields(expr)[0])
			r.Failures = append(r.Failures, fmt.Sprintf("%s (got %v)", expr, got))
		}
	}
	return nil
}

// source yields the step's event once, or Repeat times on a timer.
func (s Step) source() (extensibility.EventSource, func()) {
	if s.Repeat > 1 {
		every := s.Every
		if every <= 0 {
			every = defaultEvery
		}
		t := extensibility.NewTimerEventSource(s.Event, every, s.Repeat)
		return t, t.Stop
	}
	ch := make(chan primitives.Event, 1)
	ch <- s.Event
	close(ch)
	return extensibility.NewChannelEventSource(ch), func() {}
}

// assertionValues exposes context fields at the top level, then computed
// values, then "state", "context" and "parts".
func assertionValues(rec core.Record, parts map[string]map[string]any) (map[string]any, error) {
	data, err := yaml.Marshal(rec.Context)
	if err != nil {
		return nil, fmt.Errorf("encode context: %w", err)
	}
	ctx := map[string]any{}
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	values := make(map[string]any, len(ctx)+len(rec.Computed)+3)
	for k, v := range ctx {
		values[k] = v
	}
	for k, v := range rec.Computed {
		values[k] = v
	}
	values["state"] = rec.State
	values["context"] = ctx
	p := make(map[string]any, len(parts))
	for k, v := range parts {
		p[k] = v
	}
	values["parts"] = p
	return values, nil
}
