package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"testgen/internal/generator"
	"testgen/internal/observ"
	"testgen/internal/trace"
)

// Pipeline is immutable and may run Process several times, also concurrently.
type Pipeline struct {
	cfg Config
}

func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// OutputPath returns where the unit named name is written.
func (p *Pipeline) OutputPath(name string) string {
	return filepath.Join(p.cfg.OutputDir, name+"Tests"+p.cfg.Extension)
}

// Result summarizes one run.
type Result struct {
	// Files is the number of submitted paths.
	Files int
	// ReadFailures counts paths that could not be read.
	ReadFailures int
	// GenerateFailures counts source texts the generator rejected.
	GenerateFailures int
	// Units is the number of test units produced.
	Units int
	// WriteFailures counts units that could not be stored.
	WriteFailures int
	// Succeeded counts successful writes. A path submitted twice is written
	// twice, so it can exceed len(Written).
	Succeeded int
	// Written lists the distinct stored output paths, sorted.
	Written []string
	Timings Timings
	Timer   *observ.Timer
}

// GeneratedAny reports whether at least one test file was written.
func (r Result) GeneratedAny() bool {
	return r.Succeeded > 0
}

type sourceItem struct {
	path string
	text string
}

type unitItem struct {
	source string
	unit   generator.TestUnit
}

// run holds the mutable state of one Process call.
type run struct {
	p     *Pipeline
	span  *trace.Span
	timer *observ.Timer

	readFailures     atomic.Int64
	generateFailures atomic.Int64
	units            atomic.Int64
	writeFailures    atomic.Int64
	succeeded        atomic.Int64

	mu      sync.Mutex
	written []string
	timings Timings
}

// Process runs every path through read → generate → write and returns once
// the last write finished. Per-item failures are absorbed; the error is
// non-nil only when ctx was cancelled, in which case Result covers the items
// that completed.
func (p *Pipeline) Process(ctx context.Context, paths []string) (Result, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "pipeline")
	span.Attr("files", fmt.Sprint(len(paths)))
	r := &run{p: p, span: span, timer: observ.NewTimer()}

	sources := make(chan sourceItem, p.cfg.MaxGenerate)
	units := make(chan unitItem, p.cfg.MaxWrite)

	var wg sync.WaitGroup
	wg.Go(func() { r.readStage(ctx, paths, sources) })
	wg.Go(func() { r.generateStage(ctx, sources, units) })
	wg.Go(func() { r.writeStage(ctx, units) })
	wg.Wait()

	res := r.result(len(paths))
	r.span.End(fmt.Sprintf("written=%d", res.Succeeded))
	return res, ctx.Err()
}

func (r *run) result(files int) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	written := slices.Clone(r.written)
	slices.Sort(written)
	written = slices.Compact(written)
	return Result{
		Files:            files,
		ReadFailures:     int(r.readFailures.Load()),
		GenerateFailures: int(r.generateFailures.Load()),
		Units:            int(r.units.Load()),
		WriteFailures:    int(r.writeFailures.Load()),
		Succeeded:        int(r.succeeded.Load()),
		Written:          written,
		Timings:          r.timings,
		Timer:            r.timer,
	}
}

func (r *run) emit(evt Event) {
	if r.p.cfg.Progress != nil {
		r.p.cfg.Progress.OnEvent(evt)
	}
}

// stage opens the trace span and timer phase of one stage; the returned
// function closes both and records the stage duration.
func (r *run) stage(st Stage) (*trace.Span, func(note string)) {
	span := r.span.Child(trace.ScopeStage, string(st))
	idx := r.timer.Begin(string(st))
	start := time.Now()
	return span, func(note string) {
		r.timer.End(idx, note)
		r.mu.Lock()
		r.timings.Set(st, time.Since(start))
		r.mu.Unlock()
		span.End(note)
	}
}

func (r *run) readStage(ctx context.Context, paths []string, out chan<- sourceItem) {
	defer close(out)
	span, done := r.stage(StageRead)

	var g errgroup.Group
	g.SetLimit(r.p.cfg.MaxRead)
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		r.emit(Event{File: path, Source: path, Stage: StageRead, Status: StatusQueued})
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			item := r.read(ctx, span, path)
			select {
			case out <- item:
			case <-ctx.Done():
			}
			return nil
		})
	}
	_ = g.Wait()
	done(fmt.Sprintf("failed=%d", r.readFailures.Load()))
}

func (r *run) read(ctx context.Context, parent *trace.Span, path string) sourceItem {
	fspan := parent.Child(trace.ScopeFile, "read:"+path)
	r.emit(Event{File: path, Source: path, Stage: StageRead, Status: StatusWorking})
	start := time.Now()

	text, err := r.p.cfg.Storage.ReadFile(ctx, path)
	elapsed := time.Since(start)
	if err != nil {
		// нечитаемый файл идёт дальше пустым текстом, генератор его отбросит
		r.readFailures.Add(1)
		r.emit(Event{File: path, Source: path, Stage: StageRead, Status: StatusError, Err: err, Elapsed: elapsed})
		fspan.End(err.Error())
		return sourceItem{path: path}
	}
	r.emit(Event{File: path, Source: path, Stage: StageRead, Status: StatusDone, Elapsed: elapsed})
	fspan.End("")
	return sourceItem{path: path, text: text}
}

func (r *run) generateStage(ctx context.Context, in <-chan sourceItem, out chan<- unitItem) {
	defer close(out)
	span, done := r.stage(StageGenerate)

	var g errgroup.Group
	g.SetLimit(r.p.cfg.MaxGenerate)
	for item := range in {
		// вход дочитываем до конца даже после отмены, чтобы чтение не зависло
		if ctx.Err() != nil {
			continue
		}
		r.emit(Event{File: item.path, Source: item.path, Stage: StageGenerate, Status: StatusQueued})
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			for _, unit := range r.generate(span, item) {
				select {
				case out <- unitItem{source: item.path, unit: unit}:
				case <-ctx.Done():
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	done(fmt.Sprintf("units=%d failed=%d", r.units.Load(), r.generateFailures.Load()))
}

func (r *run) generate(parent *trace.Span, item sourceItem) []generator.TestUnit {
	fspan := parent.Child(trace.ScopeFile, "generate:"+item.path)
	r.emit(Event{File: item.path, Source: item.path, Stage: StageGenerate, Status: StatusWorking})
	start := time.Now()

	units, err := r.p.cfg.Generator.Generate(item.text)
	elapsed := time.Since(start)
	if err != nil {
		r.generateFailures.Add(1)
		r.emit(Event{File: item.path, Source: item.path, Stage: StageGenerate, Status: StatusError, Err: err, Elapsed: elapsed})
		fspan.End(err.Error())
		return nil
	}
	r.units.Add(int64(len(units)))
	r.emit(Event{File: item.path, Source: item.path, Stage: StageGenerate, Status: StatusDone, Elapsed: elapsed})
	fspan.Attr("units", fmt.Sprint(len(units))).End("")
	return units
}

func (r *run) writeStage(ctx context.Context, in <-chan unitItem) {
	span, done := r.stage(StageWrite)

	var g errgroup.Group
	g.SetLimit(r.p.cfg.MaxWrite)
	for item := range in {
		if ctx.Err() != nil {
			continue
		}
		path := r.p.OutputPath(item.unit.Name)
		r.emit(Event{File: path, Source: item.source, Stage: StageWrite, Status: StatusQueued})
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r.write(ctx, span, path, item)
			return nil
		})
	}
	_ = g.Wait()
	done(fmt.Sprintf("written=%d failed=%d", r.succeeded.Load(), r.writeFailures.Load()))
}

func (r *run) write(ctx context.Context, parent *trace.Span, path string, item unitItem) {
	fspan := parent.Child(trace.ScopeFile, "write:"+path)
	r.emit(Event{File: path, Source: item.source, Stage: StageWrite, Status: StatusWorking})
	start := time.Now()

	err := r.p.cfg.Storage.WriteFile(ctx, path, []byte(item.unit.Content))
	elapsed := time.Since(start)
	if err != nil {
		r.writeFailures.Add(1)
		r.emit(Event{File: path, Source: item.source, Stage: StageWrite, Status: StatusError, Err: err, Elapsed: elapsed})
		fspan.End(err.Error())
		return
	}
	r.succeeded.Add(1)
	r.mu.Lock()
	r.written = append(r.written, path)
	r.mu.Unlock()
	r.emit(Event{File: path, Source: item.source, Stage: StageWrite, Status: StatusDone, Elapsed: elapsed})
	fspan.End("")
}
