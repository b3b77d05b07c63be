package driver

import (
	"context"
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/google/uuid"

	"sjavac/internal/diag"
	"sjavac/internal/observ"
	"sjavac/internal/pipeline"
	"sjavac/internal/sema"
	"sjavac/internal/source"
	"sjavac/internal/trace"
)

// Options configures a check run.
type Options struct {
	Jobs       int      // parallel files, <=0 means GOMAXPROCS
	Extensions []string // source suffixes picked up when walking directories
	Cache      *DiskCache
	Progress   pipeline.ProgressSink
	Timer      *observ.Timer
	BaseDir    string // relative paths are printed against it; "" means the working directory
}

var defaultExtensions = []string{".sjava"}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return defaultExtensions
	}
	return o.Extensions
}

// CheckFile verifies a single file without directory expansion,
// which is the legacy single-argument contract.
func CheckFile(ctx context.Context, path string, opts Options) *Batch {
	b := newBatch(opts)
	span, ctx := beginRun(ctx, b.RunID, 1)
	b.add(loadAndCheck(ctx, b.FileSet, path, opts))
	endRun(span, b)
	return b
}

// CheckSource verifies in-memory content registered under name.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) *Batch {
	b := newBatch(opts)
	span, ctx := beginRun(ctx, b.RunID, 1)
	id := b.FileSet.AddVirtual(name, content)
	b.add(checkLoaded(ctx, b.FileSet, id, 0, opts))
	endRun(span, b)
	return b
}

func newBatch(opts Options) *Batch {
	fs := source.NewFileSet()
	fs.SetBaseDir(opts.BaseDir)
	return &Batch{RunID: uuid.NewString(), FileSet: fs}
}

func beginRun(ctx context.Context, runID string, files int) (*trace.Span, context.Context) {
	span, ctx := trace.Begin(ctx, trace.ScopeDriver, "check")
	span.WithExtra("run", runID).WithExtra("files", strconv.Itoa(files))
	return span, ctx
}

func endRun(span *trace.Span, b *Batch) {
	span.WithExtra("outcome", b.Outcome.String())
	span.End("")
}

func loadAndCheck(ctx context.Context, fset *source.FileSet, path string, opts Options) Report {
	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	start := time.Now()
	id, err := fset.Load(path)
	if err != nil {
		return unreadable(fset, path, err, opts)
	}
	return checkLoaded(ctx, fset, id, time.Since(start), opts)
}

// unreadable registers an empty placeholder so the diagnostic has a file to point at.
func unreadable(fset *source.FileSet, path string, err error, opts Options) Report {
	reason := err.Error()
	var pe *fs.PathError
	if errors.As(err, &pe) {
		reason = pe.Err.Error()
	}
	de := diag.Wrap(err, diag.IOUnreadable, path, reason)
	id := fset.AddVirtual(path, nil)
	d := de.Diagnostic(source.Span{File: id})
	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: de})
	return Report{
		Outcome:    IOError,
		Err:        de,
		Diagnostic: &d,
		Path:       fset.Get(id).Path,
		File:       id,
	}
}

// checkLoaded runs both checker phases over a file already in fset.
// It only reads from fset, so several calls may share it.
func checkLoaded(ctx context.Context, fset *source.FileSet, id source.FileID, readDur time.Duration, opts Options) (rep Report) {
	f := fset.Get(id)
	rep = Report{Path: f.Path, File: id, Hash: cacheKey(f)}
	if readDur > 0 {
		rep.Timings.Set(pipeline.StageRead, readDur)
	}

	span, ctx := trace.Begin(trace.WithFile(ctx, f.Path), trace.ScopeModule, "check-file")
	defer func() {
		span.WithExtra("outcome", rep.Outcome.String())
		if rep.Cached {
			span.WithExtra("cached", "true")
		}
		span.End(errDetail(rep.Err))
		recordTimings(opts.Timer, &rep)
		status := pipeline.StatusDone
		if rep.Outcome != Legal {
			status = pipeline.StatusError
		}
		pipeline.Emit(opts.Progress, pipeline.Event{File: f.Path, Stage: pipeline.StageReplay, Status: status, Err: rep.Err, Elapsed: rep.Timings.Sum(pipeline.Stages...)})
	}()

	if opts.Cache != nil {
		var payload CachePayload
		if ok, err := opts.Cache.Get(rep.Hash, &payload); err == nil && ok {
			pipeline.Emit(opts.Progress, pipeline.Event{File: f.Path, Stage: pipeline.StageCache, Status: pipeline.StatusWorking})
			rep.Cached = true
			rep.fail(f, payload.verdict())
			return rep
		}
	}

	if err := ctx.Err(); err != nil {
		// файл так и не проверен: вердикта нет
		rep.fail(f, diag.Wrap(err, diag.IOUnreadable, f.Path, err.Error()))
		return rep
	}

	s := sema.NewSession()
	pipeline.Emit(opts.Progress, pipeline.Event{File: f.Path, Stage: pipeline.StageScan, Status: pipeline.StatusWorking})
	start := time.Now()
	q, err := s.Scan(ctx, f.Lines())
	rep.Timings.Set(pipeline.StageScan, time.Since(start))
	if err == nil {
		pipeline.Emit(opts.Progress, pipeline.Event{File: f.Path, Stage: pipeline.StageReplay, Status: pipeline.StatusWorking})
		start = time.Now()
		_, err = s.Replay(ctx, q)
		rep.Timings.Set(pipeline.StageReplay, time.Since(start))
	}
	rep.fail(f, err)

	if opts.Cache != nil && rep.Outcome != IOError {
		// сбой записи кэша не влияет на вердикт
		_ = opts.Cache.Put(rep.Hash, payloadFor(&rep))
	}
	return rep
}

// fail records err as the verdict of r; nil leaves the report legal.
func (r *Report) fail(f *source.File, err error) {
	r.Err = err
	r.Outcome = Classify(err)
	if de, ok := diag.AsError(err); ok {
		d := de.Diagnostic(statementSpan(f, de.Line))
		for _, n := range de.Notes {
			d = d.WithNote(statementSpan(f, n.Line), n.Msg)
		}
		r.Diagnostic = &d
	}
}

// statementSpan covers the line without its surrounding whitespace.
func statementSpan(f *source.File, line uint32) source.Span {
	if line == 0 {
		return source.Span{File: f.ID}
	}
	sp := f.LineSpan(line)
	for sp.Start < sp.End && isSpace(f.Content[sp.Start]) {
		sp.Start++
	}
	for sp.End > sp.Start && isSpace(f.Content[sp.End-1]) {
		sp.End--
	}
	return sp
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func recordTimings(t *observ.Timer, r *Report) {
	if t == nil {
		return
	}
	for _, st := range pipeline.Stages {
		if r.Timings.Has(st) {
			t.Add(string(st), r.Timings.Duration(st))
		}
	}
}

func errDetail(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
